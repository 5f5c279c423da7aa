package contracts

import "github.com/ethereum/go-ethereum/common"

var (
	// VotingContractAddr is where the block voting contract is predeployed
	VotingContractAddr = common.HexToAddress("0x0000000000000000000000000000000000000020")
	// GovernanceContractAddr is where the governance contract is predeployed
	GovernanceContractAddr = common.HexToAddress("0x000000000000000000000000000000000000002a")
)

// Storage layout of the block voting contract
const (
	voteThresholdSlot   uint64 = 1 // uint256 public voteThreshold
	voterCountSlot      uint64 = 2 // uint256 public voterCount
	canVoteSlot         uint64 = 3 // mapping(address => bool) public canVote
	blockMakerCountSlot uint64 = 4 // uint256 public blockMakerCount
	canCreateBlocksSlot uint64 = 5 // mapping(address => bool) public canCreateBlocks
)

// Storage layout of the governance contract
const (
	isOwnerSlot    uint64 = 0 // mapping(address => bool) public isOwner
	ownerCountSlot uint64 = 1 // uint256 public ownerCount
)
