// Package slot derives EVM storage keys for Solidity state variables.
//
// Simple value types occupy the slot equal to their declaration index. A
// mapping(address => X) declared at index i stores the value for key a at
// keccak256(leftPad32(a) . leftPad32(i)). A dynamic array declared at index i
// keeps its length at i and element n at keccak256(leftPad32(i)) + n.
package slot

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Scalar returns the slot of a simple variable declared at index
func Scalar(index uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(index))
}

// Mapping returns the slot holding key's entry of the address-keyed mapping
// declared at index. crypto.Keccak256 is the pre-standard Keccak used by the
// EVM, not NIST SHA3-256.
func Mapping(index uint64, key common.Address) common.Hash {
	buf := make([]byte, 0, 2*common.HashLength)
	buf = append(buf, common.LeftPadBytes(key.Bytes(), common.HashLength)...)
	buf = append(buf, Scalar(index).Bytes()...)
	return crypto.Keccak256Hash(buf)
}

// ArrayElement returns the slot of element position of the dynamic array
// declared at index, for arrays of single-slot elements
func ArrayElement(index, position uint64) common.Hash {
	base := new(big.Int).SetBytes(crypto.Keccak256(Scalar(index).Bytes()))
	base.Add(base, new(big.Int).SetUint64(position))
	// wraps modulo 2^256 like the EVM does
	return common.BytesToHash(base.Bytes())
}

// Hex renders a slot the way genesis storage keys are written
func Hex(h common.Hash) string {
	return h.Hex()
}

// Value renders n as a minimal hex quantity
func Value(n uint64) string {
	return hexutil.EncodeUint64(n)
}
