package state

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"
)

// SPTNode is a node of the sparse prefix tree. Each level consumes one byte
// of the key.
type SPTNode struct {
	Hash     []byte
	Children map[byte]*SPTNode
	Value    []byte
	IsLeaf   bool
}

// NewSPTNode creates an empty node
func NewSPTNode() *SPTNode {
	return &SPTNode{
		Children: make(map[byte]*SPTNode),
	}
}

// SPT is a sparse prefix tree keyed by account address
type SPT struct {
	Root  *SPTNode
	dirty bool
}

// NewSPT creates an empty tree
func NewSPT() *SPT {
	return &SPT{
		Root: NewSPTNode(),
	}
}

func keccak(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// hash of an inner node covers all 256 child positions, empty ones as zero
func (n *SPTNode) hash() []byte {
	if n.IsLeaf {
		return keccak(n.Value)
	}
	buf := make([]byte, 0, 256*common.HashLength)
	for i := 0; i < 256; i++ {
		if child, exists := n.Children[byte(i)]; exists {
			buf = append(buf, child.Hash...)
		} else {
			buf = append(buf, make([]byte, common.HashLength)...)
		}
	}
	return keccak(buf)
}

// Insert sets the value at key
func (t *SPT) Insert(key []byte, value []byte) {
	current := t.Root
	for _, b := range key {
		if _, exists := current.Children[b]; !exists {
			current.Children[b] = NewSPTNode()
		}
		current = current.Children[b]
	}
	current.IsLeaf = true
	current.Value = value
	t.dirty = true
}

// Get returns the value at key
func (t *SPT) Get(key []byte) ([]byte, bool) {
	current := t.Root
	for _, b := range key {
		child, exists := current.Children[b]
		if !exists {
			return nil, false
		}
		current = child
	}
	if current.IsLeaf {
		return current.Value, true
	}
	return nil, false
}

func (t *SPT) updateNodeHash(node *SPTNode) {
	for _, child := range node.Children {
		t.updateNodeHash(child)
	}
	node.Hash = node.hash()
}

// RootHash returns the hex root, hashing the tree if it changed
func (t *SPT) RootHash() string {
	if t.dirty || t.Root.Hash == nil {
		t.updateNodeHash(t.Root)
		t.dirty = false
	}
	return hex.EncodeToString(t.Root.Hash)
}

// accountToKey converts an account address to the tree key
func accountToKey(addr string) []byte {
	return common.HexToAddress(addr).Bytes()
}

type rlpSlot struct {
	Key   common.Hash
	Value common.Hash
}

type rlpAccount struct {
	Balance *big.Int
	Nonce   uint64
	Code    []byte
	Storage []rlpSlot
}

// accountToValue RLP-encodes the account with its storage sorted by slot so
// the encoding does not depend on map order
func accountToValue(acc *Account) ([]byte, error) {
	slots := make([]rlpSlot, 0, len(acc.Storage))
	for k, v := range acc.Storage {
		key, err := storageWord(k)
		if err != nil {
			return nil, fmt.Errorf("invalid storage key %q: %v", k, err)
		}
		val, err := storageWord(v)
		if err != nil {
			return nil, fmt.Errorf("invalid storage value %q: %v", v, err)
		}
		slots = append(slots, rlpSlot{Key: key, Value: val})
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Key.Cmp(slots[j].Key) < 0
	})

	balance := acc.Balance
	if balance == nil {
		balance = new(big.Int)
	}
	return rlp.EncodeToBytes(rlpAccount{
		Balance: balance,
		Nonce:   acc.Nonce,
		Code:    acc.Code,
		Storage: slots,
	})
}

// storageWord reads a slot key or value, which may be minimal hex. Words
// wider than 32 bytes are rejected.
func storageWord(s string) (common.Hash, error) {
	n, ok := math.ParseBig256(s)
	if !ok || !strings.HasPrefix(strings.ToLower(s), "0x") {
		return common.Hash{}, fmt.Errorf("not a hex word")
	}
	return common.BigToHash(n), nil
}

// CalculateStateHashSPT returns the root of the tree built over accounts.
// Equal allocations give equal roots whatever order they were built in.
func CalculateStateHashSPT(accounts map[string]*Account) (string, error) {
	spt := NewSPT()

	addresses := make([]string, 0, len(accounts))
	for addr := range accounts {
		addresses = append(addresses, addr)
	}
	sort.Strings(addresses)

	for _, addr := range addresses {
		value, err := accountToValue(accounts[addr])
		if err != nil {
			return "", fmt.Errorf("failed to encode account %s: %v", addr, err)
		}
		spt.Insert(accountToKey(addr), value)
	}

	return "0x" + spt.RootHash(), nil
}

// Fingerprint returns the tree root over every stored account
func (s *GenesisState) Fingerprint() (string, error) {
	accounts, err := s.GetAllAccounts()
	if err != nil {
		return "", err
	}
	return CalculateStateHashSPT(accounts)
}
