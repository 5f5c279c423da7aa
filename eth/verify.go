package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/airchains-network/quorum-genesis/alloc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/sirupsen/logrus"
)

// genesisBlock is the block every check reads at
var genesisBlock = big.NewInt(0)

// Mismatch is a difference between the document and the node
type Mismatch struct {
	Address  string
	Slot     string // empty for a balance
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	if m.Slot == "" {
		return fmt.Sprintf("%s balance: expected %s, got %s", m.Address, m.Expected, m.Actual)
	}
	return fmt.Sprintf("%s slot %s: expected %s, got %s", m.Address, m.Slot, m.Expected, m.Actual)
}

// VerifyAlloc reads every balance and storage slot of a from the node's
// genesis block and returns the ones that differ
func VerifyAlloc(ctx context.Context, reader StateReader, a alloc.Allocation, log *logrus.Logger) ([]Mismatch, error) {
	var mismatches []Mismatch
	for _, addr := range a.Addresses() {
		acc := a[addr]
		account := common.HexToAddress(addr)

		expected, ok := math.ParseBig256(acc.Balance)
		if !ok {
			return nil, fmt.Errorf("invalid balance for %s: %q", addr, acc.Balance)
		}
		actual, err := reader.BalanceAt(ctx, account, genesisBlock)
		if err != nil {
			return nil, fmt.Errorf("failed to get balance of %s: %v", addr, err)
		}
		if actual == nil {
			actual = new(big.Int)
		}
		if expected.Cmp(actual) != 0 {
			mismatches = append(mismatches, Mismatch{Address: addr, Expected: expected.String(), Actual: actual.String()})
		}

		for _, key := range acc.Storage.Keys() {
			want := common.HexToHash(acc.Storage[key])
			got, err := reader.StorageAt(ctx, account, common.HexToHash(key), genesisBlock)
			if err != nil {
				return nil, fmt.Errorf("failed to get storage %s of %s: %v", key, addr, err)
			}
			if common.BytesToHash(got) != want {
				mismatches = append(mismatches, Mismatch{
					Address:  addr,
					Slot:     key,
					Expected: want.Hex(),
					Actual:   common.BytesToHash(got).Hex(),
				})
			}
		}
		log.Debugf("Checked %s: balance and %d slots", addr, len(acc.Storage))
	}
	return mismatches, nil
}
