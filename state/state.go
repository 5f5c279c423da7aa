package state

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/airchains-network/quorum-genesis/alloc"
	"github.com/airchains-network/quorum-genesis/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const accountPrefix = "account:"

// Account is the stored form of a genesis account
type Account struct {
	Balance *big.Int      `json:"balance"`
	Nonce   uint64        `json:"nonce"`
	Code    []byte        `json:"code,omitempty"`
	Storage types.Storage `json:"storage,omitempty"`
}

// GenesisState keeps the accounts of a genesis alloc in leveldb
type GenesisState struct {
	db *leveldb.DB
}

// NewGenesisState opens the state at dbPath. An empty path keeps the state
// in memory.
func NewGenesisState(dbPath string) (*GenesisState, error) {
	var (
		db  *leveldb.DB
		err error
	)
	if dbPath == "" {
		db, err = leveldb.Open(storage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(dbPath, &opt.Options{ErrorIfMissing: false})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	return &GenesisState{db: db}, nil
}

// GetAccount returns the account at addr, or nil when it is absent
func (s *GenesisState) GetAccount(addr string) (*Account, error) {
	data, err := s.db.Get([]byte(accountPrefix+strings.ToLower(addr)), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %v", err)
	}
	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return nil, fmt.Errorf("failed to decode account: %v", err)
	}
	return &acc, nil
}

// SaveAccount stores acc at addr
func (s *GenesisState) SaveAccount(addr string, acc *Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("failed to encode account: %v", err)
	}
	return s.db.Put([]byte(accountPrefix+strings.ToLower(addr)), data, nil)
}

// GetAllAccounts returns every stored account keyed by address
func (s *GenesisState) GetAllAccounts() (map[string]*Account, error) {
	accounts := make(map[string]*Account)
	iter := s.db.NewIterator(util.BytesPrefix([]byte(accountPrefix)), nil)
	defer iter.Release()

	for iter.Next() {
		addr := string(iter.Key()[len(accountPrefix):])
		var acc Account
		if err := json.Unmarshal(iter.Value(), &acc); err != nil {
			return nil, fmt.Errorf("failed to decode account %s: %v", addr, err)
		}
		accounts[addr] = &acc
	}
	return accounts, iter.Error()
}

// LoadAlloc replaces the stored accounts with those of a
func (s *GenesisState) LoadAlloc(a alloc.Allocation) error {
	batch := new(leveldb.Batch)
	iter := s.db.NewIterator(util.BytesPrefix([]byte(accountPrefix)), nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to clear state: %v", err)
	}

	for _, addr := range a.Addresses() {
		acc, err := accountFromGenesis(a[addr])
		if err != nil {
			return fmt.Errorf("invalid genesis account %s: %v", addr, err)
		}
		data, err := json.Marshal(acc)
		if err != nil {
			return fmt.Errorf("failed to encode account: %v", err)
		}
		batch.Put([]byte(accountPrefix+addr), data)
	}
	return s.db.Write(batch, nil)
}

// Close shuts the database
func (s *GenesisState) Close() error {
	return s.db.Close()
}

func accountFromGenesis(g *types.GenesisAccount) (*Account, error) {
	acc := &Account{Balance: new(big.Int)}
	if g.Balance != "" {
		b, ok := math.ParseBig256(g.Balance)
		if !ok {
			return nil, fmt.Errorf("invalid balance %q", g.Balance)
		}
		acc.Balance = b
	}
	if g.Nonce != "" {
		n, ok := math.ParseBig256(g.Nonce)
		if !ok || !n.IsUint64() {
			return nil, fmt.Errorf("invalid nonce %q", g.Nonce)
		}
		acc.Nonce = n.Uint64()
	}
	if g.Code != "" {
		code, err := decodeHex(g.Code)
		if err != nil {
			return nil, fmt.Errorf("invalid code: %v", err)
		}
		acc.Code = code
	}
	if len(g.Storage) > 0 {
		acc.Storage = make(types.Storage, len(g.Storage))
		for k, v := range g.Storage {
			acc.Storage[k] = v
		}
	}
	return acc, nil
}

func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
