package eth

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/airchains-network/quorum-genesis/alloc"
	"github.com/airchains-network/quorum-genesis/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	balances map[common.Address]*big.Int
	storage  map[common.Address]map[common.Hash]common.Hash
	err      error
}

func (f *fakeNode) BalanceAt(_ context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	if blockNumber.Sign() != 0 {
		return nil, errors.New("not genesis")
	}
	return f.balances[account], nil
}

func (f *fakeNode) StorageAt(_ context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error) {
	if blockNumber.Sign() != 0 {
		return nil, errors.New("not genesis")
	}
	v := f.storage[account][key]
	return v.Bytes(), nil
}

var (
	votingAddr = common.HexToAddress("0x0000000000000000000000000000000000000020")
	voterAddr  = common.HexToAddress("0xaa00000000000000000000000000000000000001")
	thresholdK = "0x0000000000000000000000000000000000000000000000000000000000000001"
	voterK     = "0x6febaea088ca16c9b3fc518af251a707182b84ef21a359e0bdeef864d42a2897"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleAlloc() alloc.Allocation {
	return alloc.Allocation{
		alloc.Key(votingAddr): {
			Balance: alloc.FundingBalance,
			Storage: types.Storage{thresholdK: "0x2", voterK: "0x1"},
		},
		alloc.Key(voterAddr): {Balance: alloc.FundingBalance},
	}
}

func matchingNode() *fakeNode {
	funding, _ := new(big.Int).SetString(alloc.FundingBalance, 10)
	return &fakeNode{
		balances: map[common.Address]*big.Int{
			votingAddr: funding,
			voterAddr:  funding,
		},
		storage: map[common.Address]map[common.Hash]common.Hash{
			votingAddr: {
				common.HexToHash(thresholdK): common.HexToHash("0x2"),
				common.HexToHash(voterK):     common.HexToHash("0x1"),
			},
		},
	}
}

func TestVerifyAllocMatches(t *testing.T) {
	mismatches, err := VerifyAlloc(context.Background(), matchingNode(), sampleAlloc(), quietLogger())
	require.NoError(t, err)
	require.Empty(t, mismatches)
}

func TestVerifyAllocReportsEveryDifference(t *testing.T) {
	node := matchingNode()
	node.balances[voterAddr] = big.NewInt(5)
	delete(node.storage[votingAddr], common.HexToHash(voterK))
	node.storage[votingAddr][common.HexToHash(thresholdK)] = common.HexToHash("0x3")

	mismatches, err := VerifyAlloc(context.Background(), node, sampleAlloc(), quietLogger())
	require.NoError(t, err)
	require.Equal(t, []Mismatch{
		{
			Address:  alloc.Key(votingAddr),
			Slot:     thresholdK,
			Expected: common.HexToHash("0x2").Hex(),
			Actual:   common.HexToHash("0x3").Hex(),
		},
		{
			Address:  alloc.Key(votingAddr),
			Slot:     voterK,
			Expected: common.HexToHash("0x1").Hex(),
			Actual:   common.Hash{}.Hex(),
		},
		{
			Address:  alloc.Key(voterAddr),
			Expected: alloc.FundingBalance,
			Actual:   "5",
		},
	}, mismatches)
	require.Contains(t, mismatches[2].String(), "balance")
	require.Contains(t, mismatches[0].String(), thresholdK)
}

func TestVerifyAllocNodeError(t *testing.T) {
	node := matchingNode()
	node.err = errors.New("connection refused")
	_, err := VerifyAlloc(context.Background(), node, sampleAlloc(), quietLogger())
	require.Error(t, err)
}

func TestVerifyAllocBalanceForms(t *testing.T) {
	cases := []struct {
		name    string
		balance string
		node    int64
		fails   bool
	}{
		{name: "empty is zero", balance: "", node: 0},
		{name: "decimal", balance: "1000", node: 1000},
		{name: "hex", balance: "0x10", node: 16},
		{name: "not a number", balance: "ten", fails: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			node := &fakeNode{balances: map[common.Address]*big.Int{voterAddr: big.NewInt(c.node)}}
			a := alloc.Allocation{alloc.Key(voterAddr): {Balance: c.balance}}
			mismatches, err := VerifyAlloc(context.Background(), node, a, quietLogger())
			if c.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Empty(t, mismatches)
		})
	}
}
