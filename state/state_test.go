package state

import (
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/airchains-network/quorum-genesis/alloc"
	"github.com/airchains-network/quorum-genesis/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const (
	voting = "0x0000000000000000000000000000000000000020"
	voter  = "0xaa00000000000000000000000000000000000001"
)

func sampleAlloc() alloc.Allocation {
	return alloc.Allocation{
		voting: {
			Balance: alloc.FundingBalance,
			Code:    "0x6060",
			Storage: types.Storage{
				"0x0000000000000000000000000000000000000000000000000000000000000001": "0x2",
				"0x6febaea088ca16c9b3fc518af251a707182b84ef21a359e0bdeef864d42a2897": "0x1",
			},
		},
		voter: {Balance: alloc.FundingBalance},
	}
}

func TestLoadAlloc(t *testing.T) {
	s, err := NewGenesisState("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.LoadAlloc(sampleAlloc()))

	acc, err := s.GetAccount(voting)
	require.NoError(t, err)
	expectedBalance, _ := new(big.Int).SetString(alloc.FundingBalance, 10)
	require.Equal(t, 0, expectedBalance.Cmp(acc.Balance))
	require.Equal(t, []byte{0x60, 0x60}, acc.Code)
	require.Len(t, acc.Storage, 2)

	missing, err := s.GetAccount("0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	require.Nil(t, missing)

	// loading again replaces rather than accumulates
	require.NoError(t, s.LoadAlloc(alloc.Allocation{voter: {Balance: "1"}}))
	all, err := s.GetAllAccounts()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, int64(1), all[voter].Balance.Int64())
}

func TestLoadAllocInvalid(t *testing.T) {
	cases := []struct {
		name    string
		account *types.GenesisAccount
	}{
		{name: "balance", account: &types.GenesisAccount{Balance: "ten"}},
		{name: "nonce", account: &types.GenesisAccount{Nonce: "0xzz"}},
		{name: "code", account: &types.GenesisAccount{Code: "0x6"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := NewGenesisState("")
			require.NoError(t, err)
			defer s.Close()
			require.Error(t, s.LoadAlloc(alloc.Allocation{voter: c.account}))
		})
	}
}

func TestFingerprintOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	s, err := NewGenesisState(dir)
	require.NoError(t, err)
	require.NoError(t, s.LoadAlloc(sampleAlloc()))
	first, err := s.Fingerprint()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewGenesisState(dir)
	require.NoError(t, err)
	defer s.Close()
	second, err := s.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, 66)
}

func TestFingerprintSensitivity(t *testing.T) {
	fingerprint := func(a alloc.Allocation) string {
		s, err := NewGenesisState("")
		require.NoError(t, err)
		defer s.Close()
		require.NoError(t, s.LoadAlloc(a))
		fp, err := s.Fingerprint()
		require.NoError(t, err)
		return fp
	}

	base := fingerprint(sampleAlloc())
	require.Equal(t, base, fingerprint(sampleAlloc()))

	changedBalance := sampleAlloc()
	changedBalance[voter].Balance = "1"
	require.NotEqual(t, base, fingerprint(changedBalance))

	changedSlot := sampleAlloc()
	changedSlot[voting].Storage["0x0000000000000000000000000000000000000000000000000000000000000001"] = "0x3"
	require.NotEqual(t, base, fingerprint(changedSlot))

	// minimal and padded hex are the same word
	padded := sampleAlloc()
	padded[voting].Storage["0x0000000000000000000000000000000000000000000000000000000000000001"] =
		"0x0000000000000000000000000000000000000000000000000000000000000002"
	require.Equal(t, base, fingerprint(padded))

	extra := sampleAlloc()
	extra.Fund(alloc.FundingBalance, common.HexToAddress("0xbb00000000000000000000000000000000000002"))
	require.NotEqual(t, base, fingerprint(extra))
}

func TestSPT(t *testing.T) {
	tree := NewSPT()
	empty := tree.RootHash()

	tree.Insert([]byte{1, 2}, []byte("a"))
	v, ok := tree.Get([]byte{1, 2})
	require.True(t, ok)
	require.Equal(t, []byte("a"), v)

	_, ok = tree.Get([]byte{1})
	require.False(t, ok)
	_, ok = tree.Get([]byte{3})
	require.False(t, ok)

	withA := tree.RootHash()
	require.NotEqual(t, empty, withA)

	tree.Insert([]byte{1, 2}, []byte("b"))
	require.NotEqual(t, withA, tree.RootHash())
}

func TestCalculateStateHashSPTInvalidStorage(t *testing.T) {
	_, err := CalculateStateHashSPT(map[string]*Account{
		voter: {Balance: big.NewInt(1), Storage: types.Storage{"0x01": "one"}},
	})
	require.Error(t, err)
}

func TestStorageWord(t *testing.T) {
	cases := []struct {
		input string
		fails bool
	}{
		{input: "0x1"},
		{input: "0X00000000000000000000000000000000000000000000000000000000000000FF"},
		{input: "1", fails: true},
		{input: "0x", fails: true},
		{input: "0x1" + strings.Repeat("0", 64), fails: true},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			w, err := storageWord(c.input)
			if c.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEqual(t, common.Hash{}, w)
		})
	}
}
