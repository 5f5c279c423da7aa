package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/airchains-network/quorum-genesis/alloc"
	"github.com/airchains-network/quorum-genesis/types"
)

// Document is a complete genesis file
type Document struct {
	Fields map[string]json.RawMessage
	Alloc  alloc.Allocation
}

// MarshalJSON merges the alloc back into the top-level fields. Keys come
// out sorted, so equal documents encode to equal bytes.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["alloc"] = d.Alloc
	return json.Marshal(out)
}

// Encode returns the document indented by two spaces
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Write stores the document at path. The file is written next to its
// destination and renamed into place.
func (d *Document) Write(path string) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode genesis: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create genesis file: %v", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write genesis file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write genesis file: %v", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write genesis file: %v", err)
	}
	return os.Rename(tmp.Name(), path)
}

// ReadDocument loads a genesis file written by Write, or any genesis JSON
// with an alloc
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis file: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse genesis file: %v", err)
	}
	a := make(alloc.Allocation)
	if raw, ok := fields["alloc"]; ok {
		parsed := make(map[string]*types.GenesisAccount)
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse genesis alloc: %v", err)
		}
		a, err = alloc.Normalize(parsed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse genesis alloc: %v", err)
		}
	}
	delete(fields, "alloc")
	return &Document{Fields: fields, Alloc: a}, nil
}
