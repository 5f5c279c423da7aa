package genesis

import (
	"github.com/airchains-network/quorum-genesis/alloc"
	"github.com/airchains-network/quorum-genesis/contracts"
	"github.com/sirupsen/logrus"
)

// Build derives the system contract storage and participant balances from
// in and returns a new document on top of tpl. tpl is left untouched.
func Build(tpl *Template, in *Input, log *logrus.Logger) (*Document, error) {
	a := tpl.Alloc()

	voting := contracts.BuildVotingStorage(contracts.VotingInput{
		Threshold: in.Threshold,
		Voters:    in.Voters,
		Makers:    in.Makers,
	})
	if err := a.MergeStorage(contracts.VotingContractAddr, voting); err != nil {
		return nil, err
	}
	log.Debugf("Voting contract: %d storage entries", len(voting))

	governance := contracts.BuildGovernanceStorage(in.Owners)
	if err := a.MergeStorage(contracts.GovernanceContractAddr, governance); err != nil {
		return nil, err
	}
	log.Debugf("Governance contract: %d storage entries", len(governance))

	fields := tpl.Fields()
	if len(in.GasLimit) > 0 {
		fields["gasLimit"] = in.GasLimit
	}

	funded := a.Fund(alloc.FundingBalance, in.Participants()...)
	a.FundContracts(alloc.FundingBalance)
	log.Debugf("Funded %d participant accounts", funded)

	return &Document{Fields: fields, Alloc: a}, nil
}
