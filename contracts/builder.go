package contracts

import (
	"github.com/airchains-network/quorum-genesis/slot"
	"github.com/airchains-network/quorum-genesis/types"
	"github.com/ethereum/go-ethereum/common"
)

// membershipFlag is what a mapping(address => bool) holds for true
var membershipFlag = slot.Value(1)

// VotingInput is what the block voting contract storage is derived from
type VotingInput struct {
	Threshold uint64
	Voters    []common.Address
	Makers    []common.Address
}

// BuildVotingStorage returns the initial storage of the block voting contract
func BuildVotingStorage(in VotingInput) types.Storage {
	storage := make(types.Storage)
	setScalar(storage, voteThresholdSlot, in.Threshold)
	setScalar(storage, voterCountSlot, uint64(len(in.Voters)))
	mapAddresses(storage, canVoteSlot, in.Voters)
	setScalar(storage, blockMakerCountSlot, uint64(len(in.Makers)))
	mapAddresses(storage, canCreateBlocksSlot, in.Makers)
	return storage
}

// BuildGovernanceStorage returns the initial storage of the governance contract
func BuildGovernanceStorage(owners []common.Address) types.Storage {
	storage := make(types.Storage)
	mapAddresses(storage, isOwnerSlot, owners)
	setScalar(storage, ownerCountSlot, uint64(len(owners)))
	return storage
}

func setScalar(storage types.Storage, index, value uint64) {
	storage[slot.Hex(slot.Scalar(index))] = slot.Value(value)
}

// mapAddresses flags every address in the mapping declared at index.
// A repeated address lands on the same slot.
func mapAddresses(storage types.Storage, index uint64, addrs []common.Address) {
	for _, addr := range addrs {
		storage[slot.Hex(slot.Mapping(index, addr))] = membershipFlag
	}
}
