package store

import (
	"fmt"

	"github.com/DefiantLabs/lunie-core/reducers"
)

// ApplySnapshot commits the records of a normalized snapshot one mutation at a time, the way a
// client refreshing its data does. Committed delegations missing from the snapshot are removed.
func ApplySnapshot(store *Store, snapshot reducers.Snapshot) error {
	commits := []Mutation{
		{Type: MutationSetDelegates, Payload: snapshot.Validators},
		{Type: MutationSetPool, Payload: snapshot.Pool},
		{Type: MutationSetStakingParameters, Payload: snapshot.StakingParameters},
		{Type: MutationSetWalletBalances, Payload: snapshot.Balances},
	}

	current := make(map[string]struct{}, len(snapshot.Delegations))
	for i := range snapshot.Delegations {
		delegation := snapshot.Delegations[i]
		current[delegation.ValidatorAddress] = struct{}{}
		commits = append(commits, Mutation{
			Type:    MutationSetCommittedDelegation,
			Payload: CommittedDelegation{ValidatorAddress: delegation.ValidatorAddress, Delegation: &delegation},
		})
	}
	for address := range store.State().Delegation.CommittedDelegates {
		if _, ok := current[address]; !ok {
			commits = append(commits, Mutation{
				Type:    MutationSetCommittedDelegation,
				Payload: CommittedDelegation{ValidatorAddress: address},
			})
		}
	}
	commits = append(commits, Mutation{Type: MutationSetUnbondingDelegations, Payload: snapshot.Undelegations})

	for _, proposal := range snapshot.Proposals {
		id := fmt.Sprint(proposal.ID)
		commits = append(commits, Mutation{Type: MutationSetProposal, Payload: proposal})
		if proposal.DetailedVotes != nil {
			commits = append(commits,
				Mutation{Type: MutationSetProposalDeposits, Payload: ProposalDeposits{ProposalID: id, Deposits: proposal.DetailedVotes.Deposits}},
				Mutation{Type: MutationSetProposalVotes, Payload: ProposalVotes{ProposalID: id, Votes: proposal.DetailedVotes.Votes}},
			)
		}
	}
	commits = append(commits,
		Mutation{Type: MutationSetGovParameters, Payload: snapshot.GovernanceParameters},
		Mutation{Type: MutationSetDelegationsLoaded, Payload: true},
	)

	for _, commit := range commits {
		if err := store.Commit(commit.Type, commit.Payload); err != nil {
			return fmt.Errorf("applying snapshot of %s: %w", snapshot.Address, err)
		}
	}
	return nil
}
