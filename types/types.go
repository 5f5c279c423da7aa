package types

import (
	"encoding/json"
	"sort"
)

// Storage maps a 0x-prefixed 32-byte slot to a minimal hex value
type Storage map[string]string

// Keys returns the slots in ascending order
func (s Storage) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GenesisAccount represents one entry of a genesis alloc
type GenesisAccount struct {
	Balance string  `json:"balance,omitempty"`
	Code    string  `json:"code,omitempty"`
	Nonce   string  `json:"nonce,omitempty"`
	Storage Storage `json:"storage,omitempty"`

	// Fields the template carries that this tool does not interpret
	Extra map[string]json.RawMessage `json:"-"`
}

var knownAccountFields = []string{"balance", "code", "nonce", "storage"}

// UnmarshalJSON keeps unknown account fields so they survive a round trip
func (a *GenesisAccount) UnmarshalJSON(data []byte) error {
	type plain GenesisAccount
	var acc plain
	if err := json.Unmarshal(data, &acc); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownAccountFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		acc.Extra = raw
	}
	*a = GenesisAccount(acc)
	return nil
}

// MarshalJSON writes the known fields plus any preserved template fields
func (a GenesisAccount) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(a.Extra)+4)
	for k, v := range a.Extra {
		out[k] = v
	}
	if a.Balance != "" {
		out["balance"] = a.Balance
	}
	if a.Code != "" {
		out["code"] = a.Code
	}
	if a.Nonce != "" {
		out["nonce"] = a.Nonce
	}
	if a.Storage != nil {
		out["storage"] = a.Storage
	}
	return json.Marshal(out)
}

// Copy returns a deep copy of the account
func (a *GenesisAccount) Copy() *GenesisAccount {
	cp := *a
	if a.Storage != nil {
		cp.Storage = make(Storage, len(a.Storage))
		for k, v := range a.Storage {
			cp.Storage[k] = v
		}
	}
	if a.Extra != nil {
		cp.Extra = make(map[string]json.RawMessage, len(a.Extra))
		for k, v := range a.Extra {
			cp.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &cp
}
