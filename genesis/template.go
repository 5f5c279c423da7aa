package genesis

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/airchains-network/quorum-genesis/alloc"
	"github.com/airchains-network/quorum-genesis/contracts"
	"github.com/airchains-network/quorum-genesis/types"
)

// ErrTemplateContract is returned when a template lacks a system contract
var ErrTemplateContract = errors.New("template has no alloc entry for system contract")

//go:embed template.json
var defaultTemplateJSON []byte

// Template is the genesis skeleton the document is built from. It is never
// mutated once parsed.
type Template struct {
	fields map[string]json.RawMessage
	alloc  alloc.Allocation
}

// DefaultTemplate returns the embedded skeleton. It has no contract
// bytecode; real deployments pass their own template.
func DefaultTemplate() (*Template, error) {
	return ParseTemplate(defaultTemplateJSON)
}

// LoadTemplate reads a template from path, or the embedded one when path is
// empty
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return DefaultTemplate()
	}
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %v", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate decodes a genesis skeleton and checks both system contracts
// are present in its alloc
func ParseTemplate(data []byte) (*Template, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse template: %v", err)
	}

	raw := make(map[string]*types.GenesisAccount)
	if a, ok := fields["alloc"]; ok {
		if err := json.Unmarshal(a, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse template alloc: %v", err)
		}
	}
	delete(fields, "alloc")

	a, err := alloc.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template alloc: %v", err)
	}
	for _, addr := range []string{alloc.Key(contracts.VotingContractAddr), alloc.Key(contracts.GovernanceContractAddr)} {
		if _, ok := a[addr]; !ok {
			return nil, fmt.Errorf("%w %s", ErrTemplateContract, addr)
		}
	}

	return &Template{fields: fields, alloc: a}, nil
}

// Alloc returns a private copy of the template allocation
func (t *Template) Alloc() alloc.Allocation {
	return t.alloc.Clone()
}

// Fields returns a copy of the top-level fields other than alloc
func (t *Template) Fields() map[string]json.RawMessage {
	cp := make(map[string]json.RawMessage, len(t.fields))
	for k, v := range t.fields {
		cp[k] = append(json.RawMessage(nil), v...)
	}
	return cp
}
