package alloc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/airchains-network/quorum-genesis/contracts"
	"github.com/airchains-network/quorum-genesis/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// FundingBalance is the wei every participant and system contract starts with
const FundingBalance = "1000000000000000000000000000"

// Allocation is a genesis alloc keyed by lower-case 0x-prefixed address
type Allocation map[string]*types.GenesisAccount

// Key normalises an address to its allocation key
func Key(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// Clone returns a deep copy so the source is never mutated
func (a Allocation) Clone() Allocation {
	cp := make(Allocation, len(a))
	for k, acc := range a {
		cp[k] = acc.Copy()
	}
	return cp
}

// Get returns the entry for addr, or nil
func (a Allocation) Get(addr common.Address) *types.GenesisAccount {
	return a[Key(addr)]
}

// MergeStorage writes entries into the storage of an existing account.
// Slots already present and not in entries are left alone.
func (a Allocation) MergeStorage(addr common.Address, entries types.Storage) error {
	acc, ok := a[Key(addr)]
	if !ok {
		return fmt.Errorf("no alloc entry for %s", Key(addr))
	}
	if acc.Storage == nil {
		acc.Storage = make(types.Storage, len(entries))
	}
	for k, v := range entries {
		acc.Storage[k] = v
	}
	return nil
}

// Fund sets balance on every address, creating entries as needed.
// Addresses are deduplicated on their normalised form; code and storage of
// existing entries are kept.
func (a Allocation) Fund(balance string, addrs ...common.Address) int {
	funded := make(map[string]struct{}, len(addrs))
	for _, addr := range addrs {
		key := Key(addr)
		if _, done := funded[key]; done {
			continue
		}
		funded[key] = struct{}{}
		if acc, ok := a[key]; ok {
			acc.Balance = balance
			continue
		}
		a[key] = &types.GenesisAccount{Balance: balance}
	}
	return len(funded)
}

// FundContracts sets balance on both system contracts. They are never list
// members, so this always touches entries Fund left alone.
func (a Allocation) FundContracts(balance string) {
	a.Fund(balance, contracts.VotingContractAddr, contracts.GovernanceContractAddr)
}

// Addresses returns the allocation keys in ascending order
func (a Allocation) Addresses() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize rekeys an allocation read from a template, whose addresses and
// storage keys may lack the 0x prefix, be short or use mixed case
func Normalize(raw map[string]*types.GenesisAccount) (Allocation, error) {
	out := make(Allocation, len(raw))
	for k, acc := range raw {
		if !common.IsHexAddress(k) {
			return nil, fmt.Errorf("invalid alloc address %q", k)
		}
		key := Key(common.HexToAddress(k))
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate alloc address %s", key)
		}
		if acc == nil {
			acc = &types.GenesisAccount{}
		}
		if acc.Storage != nil {
			storage, err := normalizeStorage(acc.Storage)
			if err != nil {
				return nil, fmt.Errorf("invalid storage of %s: %v", key, err)
			}
			acc.Storage = storage
		}
		out[key] = acc
	}
	return out, nil
}

// SlotKey renders a storage key as 0x and 64 lower-case hex digits. Short
// and upper-case forms name the same slot.
func SlotKey(k string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(k, "0x"), "0X")
	n, ok := math.ParseBig256("0x" + digits)
	if !ok || n.Sign() < 0 {
		return "", fmt.Errorf("invalid storage key %q", k)
	}
	return common.BigToHash(n).Hex(), nil
}

func normalizeStorage(s types.Storage) (types.Storage, error) {
	out := make(types.Storage, len(s))
	for k, v := range s {
		key, err := SlotKey(k)
		if err != nil {
			return nil, err
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate storage key %s", key)
		}
		out[key] = v
	}
	return out, nil
}
