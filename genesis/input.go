package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrConfigMissing  = errors.New("missing config file")
	ErrThreshold      = errors.New("voting threshold missing or less than 1")
	ErrVoters         = errors.New("voter addresses missing or less than the threshold")
	ErrMakers         = errors.New("maker addresses missing or less than 1")
	ErrOwners         = errors.New("governance owner addresses missing or less than 1")
	ErrInvalidAddress = errors.New("invalid address")
	ErrUnknownMode    = errors.New("unknown mode")
)

// Mode selects which input rules apply
type Mode string

const (
	// ModeQuorum defaults owners to the voters and funds observers
	ModeQuorum Mode = "quorum"
	// ModeExplicitOwners requires the owners list and funds observers
	ModeExplicitOwners Mode = "explicit-owners"
	// ModeLegacy defaults owners to the voters and has no observers
	ModeLegacy Mode = "legacy"
)

// Capabilities are the switches a Mode turns on
type Capabilities struct {
	OwnersDefaultToVoters  bool
	ObserversSupported     bool
	ExplicitOwnersRequired bool
}

// Capabilities returns the rules for m. The empty mode is ModeQuorum.
func (m Mode) Capabilities() (Capabilities, error) {
	switch m {
	case ModeQuorum, "":
		return Capabilities{OwnersDefaultToVoters: true, ObserversSupported: true}, nil
	case ModeExplicitOwners:
		return Capabilities{ObserversSupported: true, ExplicitOwnersRequired: true}, nil
	case ModeLegacy:
		return Capabilities{OwnersDefaultToVoters: true}, nil
	default:
		return Capabilities{}, fmt.Errorf("%w %q. Must be one of: [%s, %s, %s]", ErrUnknownMode, string(m), ModeQuorum, ModeExplicitOwners, ModeLegacy)
	}
}

// configFromJSON is the input file as written by operators. Each list has
// the name used by older deployments as an alias.
type configFromJSON struct {
	Threshold        *int64          `json:"threshold"`
	Voters           []string        `json:"voters"`
	BlockVoters      []string        `json:"blockVoters"`
	Makers           []string        `json:"makers"`
	BlockMakers      []string        `json:"blockMakers"`
	Owners           []string        `json:"owners"`
	GovernanceOwners []string        `json:"governanceOwners"`
	FundedObservers  []string        `json:"fundedObservers"`
	GasLimit         json.RawMessage `json:"gasLimit"`
}

// Input is a validated genesis configuration
type Input struct {
	Threshold       uint64
	Voters          []common.Address
	Makers          []common.Address
	Owners          []common.Address
	FundedObservers []common.Address
	// GasLimit is copied verbatim into the document when set
	GasLimit json.RawMessage
}

// Participants returns every address that receives funding, in role order
func (in *Input) Participants() []common.Address {
	all := make([]common.Address, 0, len(in.Makers)+len(in.Voters)+len(in.FundedObservers)+len(in.Owners))
	all = append(all, in.Makers...)
	all = append(all, in.Voters...)
	all = append(all, in.FundedObservers...)
	all = append(all, in.Owners...)
	return all
}

// LoadInput reads and validates the input file at path
func LoadInput(path string, mode Mode) (*Input, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w '%s' in the current directory", ErrConfigMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}
	return ParseInput(data, mode)
}

// ParseInput validates the input document. It stops at the first violated
// rule.
func ParseInput(data []byte, mode Mode) (*Input, error) {
	caps, err := mode.Capabilities()
	if err != nil {
		return nil, err
	}

	var cfg configFromJSON
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	voters := firstNonEmpty(cfg.Voters, cfg.BlockVoters)
	makers := firstNonEmpty(cfg.Makers, cfg.BlockMakers)
	owners := firstNonEmpty(cfg.Owners, cfg.GovernanceOwners)
	observers := cfg.FundedObservers
	if !caps.ObserversSupported {
		observers = nil
	}

	if cfg.Threshold == nil || *cfg.Threshold < 1 {
		return nil, ErrThreshold
	}
	threshold := uint64(*cfg.Threshold)
	if uint64(len(voters)) < threshold {
		return nil, ErrVoters
	}
	if len(makers) < 1 {
		return nil, ErrMakers
	}
	if len(owners) < 1 {
		if caps.ExplicitOwnersRequired || !caps.OwnersDefaultToVoters {
			return nil, ErrOwners
		}
		owners = voters
	}

	in := &Input{
		Threshold: threshold,
		GasLimit:  cfg.GasLimit,
	}
	if string(in.GasLimit) == "null" {
		in.GasLimit = nil
	}
	lists := []struct {
		role string
		src  []string
		dst  *[]common.Address
	}{
		{"voter", voters, &in.Voters},
		{"maker", makers, &in.Makers},
		{"owner", owners, &in.Owners},
		{"funded observer", observers, &in.FundedObservers},
	}
	for _, l := range lists {
		addrs, err := parseAddresses(l.role, l.src)
		if err != nil {
			return nil, err
		}
		*l.dst = addrs
	}
	return in, nil
}

func parseAddresses(role string, src []string) ([]common.Address, error) {
	addrs := make([]common.Address, 0, len(src))
	for _, s := range src {
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w for %s: %q", ErrInvalidAddress, role, s)
		}
		addrs = append(addrs, common.HexToAddress(s))
	}
	return addrs, nil
}

func firstNonEmpty(primary, alias []string) []string {
	if len(primary) > 0 {
		return primary
	}
	return alias
}
