package reducers

import (
	"strconv"
	"strings"
	"time"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/gov"
	"github.com/DefiantLabs/lunie-core/util"
	"github.com/shopspring/decimal"
)

// votedPercentageUnknown marks a turnout that cannot be compared to a bonded token figure.
const votedPercentageUnknown = -1

func parseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// ProposalBeginTime is the start of the period the proposal is currently in.
func ProposalBeginTime(proposal gov.Proposal) *time.Time {
	switch strings.ToLower(proposal.ProposalStatus) {
	case "depositperiod":
		return parseTime(proposal.SubmitTime)
	case "votingperiod":
		return parseTime(proposal.VotingStartTime)
	case "passed", "rejected":
		return parseTime(proposal.VotingEndTime)
	}
	return nil
}

// ProposalEndTime is the end of the period the proposal is currently in.
// Finalized proposals report the end of voting, which already lies in the past.
func ProposalEndTime(proposal gov.Proposal) *time.Time {
	switch strings.ToLower(proposal.ProposalStatus) {
	case "depositperiod":
		return parseTime(proposal.DepositEndTime)
	case "votingperiod", "passed", "rejected":
		return parseTime(proposal.VotingEndTime)
	}
	return nil
}

func ProposalLifecycleWindow(proposal gov.Proposal) (begin *time.Time, end *time.Time) {
	return ProposalBeginTime(proposal), ProposalEndTime(proposal)
}

func proposalFinalized(proposal gov.Proposal) bool {
	return proposal.ProposalStatus == gov.StatusPassed || proposal.ProposalStatus == gov.StatusRejected
}

// GetDeposit sums the total deposit of a proposal in display units.
func GetDeposit(proposal gov.Proposal) string {
	sum := decimal.Zero
	for _, coin := range proposal.TotalDeposit {
		sum = sum.Add(util.ToDecimal(coin.Amount))
	}
	return Atoms(sum.String())
}

// GetTotalVotePercentage is the share of bonded tokens that voted. Historical bonded token
// figures are not available, so finalized proposals report -1.
func GetTotalVotePercentage(proposal gov.Proposal, totalBondedTokens string, totalVoted string) float64 {
	if proposalFinalized(proposal) {
		return votedPercentageUnknown
	}
	bonded := util.ToDecimal(Atoms(totalBondedTokens))
	if bonded.IsZero() {
		return votedPercentageUnknown
	}
	voted := util.ToDecimal(totalVoted)
	if voted.IsZero() {
		return 0
	}
	return voted.Div(bonded).InexactFloat64()
}

// TallyReducer reduces a live tally. Finalized proposals use their final tally instead,
// since the live endpoint no longer reflects the outcome.
func TallyReducer(proposal gov.Proposal, tally gov.TallyResult, totalBondedTokens string) Tally {
	if proposalFinalized(proposal) {
		tally = proposal.FinalTallyResult
	}

	totalVoted := Atoms(util.ToDecimal(tally.Yes).
		Add(util.ToDecimal(tally.No)).
		Add(util.ToDecimal(tally.Abstain)).
		Add(util.ToDecimal(tally.NoWithVeto)).
		String())

	return Tally{
		Yes:                  Atoms(tally.Yes),
		No:                   Atoms(tally.No),
		Abstain:              Atoms(tally.Abstain),
		Veto:                 Atoms(tally.NoWithVeto),
		Total:                totalVoted,
		TotalVotedPercentage: GetTotalVotePercentage(proposal, totalBondedTokens, totalVoted),
	}
}

func ProposalReducer(
	networkID string,
	proposal gov.Proposal,
	tally gov.TallyResult,
	proposer gov.Proposer,
	totalBondedTokens string,
	detailedVotes *DetailedVotes,
	r Reducers,
	validators map[string]Validator,
) Proposal {
	id, _ := strconv.ParseInt(proposal.ProposalID, 10, 64)
	begin, end := ProposalLifecycleWindow(proposal)

	return Proposal{
		ID:              id,
		NetworkID:       networkID,
		Type:            proposal.ProposalContent.Type,
		Title:           proposal.ProposalContent.Value.Title,
		Description:     proposal.ProposalContent.Value.Description,
		CreationTime:    parseTime(proposal.SubmitTime),
		Status:          proposal.ProposalStatus,
		StatusBeginTime: begin,
		StatusEndTime:   end,
		Tally:           TallyReducer(proposal, tally, totalBondedTokens),
		Deposit:         GetDeposit(proposal),
		Proposer:        r.NetworkAccountReducer(proposer.Proposer, validators),
		DetailedVotes:   detailedVotes,
	}
}

func DepositReducer(deposit gov.Deposit, r Reducers) Deposit {
	var amount Coin
	if len(deposit.Amount) > 0 {
		amount = r.CoinReducer(&deposit.Amount[0], nil)
	} else {
		amount = r.CoinReducer(nil, nil)
	}
	return Deposit{
		Amount:    []Coin{amount},
		Depositor: r.NetworkAccountReducer(deposit.Depositor, nil),
	}
}

func VoteReducer(vote gov.Vote, r Reducers) Vote {
	return Vote{
		ID:     vote.ProposalID,
		Voter:  r.NetworkAccountReducer(vote.Voter, nil),
		Option: vote.Option,
	}
}

// GovernanceParameterReducer assumes a single deposit denomination.
func GovernanceParameterReducer(depositParams gov.DepositParams, tallyParams gov.TallyParams, r Reducers) GovernanceParameters {
	params := GovernanceParameters{
		VotingThreshold:  tallyParams.Threshold,
		VetoThreshold:    tallyParams.Veto,
		DepositThreshold: decimal.Zero,
	}
	if len(depositParams.MinDeposit) > 0 {
		minDeposit := depositParams.MinDeposit[0]
		params.DepositDenom = r.DenomLookup(minDeposit.Denom)
		params.DepositThreshold = util.ToDecimal(minDeposit.Amount).Shift(-atomsExponent)
	}
	return params
}

// DetailedVotesReducer bundles reduced deposits and votes of a proposal.
func DetailedVotesReducer(deposits []gov.Deposit, votes []gov.Vote, r Reducers) *DetailedVotes {
	detailed := &DetailedVotes{
		Deposits: make([]Deposit, 0, len(deposits)),
		Votes:    make([]Vote, 0, len(votes)),
		VotesSum: len(votes),
	}
	sum := decimal.Zero
	for _, deposit := range deposits {
		reduced := DepositReducer(deposit, r)
		sum = sum.Add(reduced.Amount[0].Amount)
		detailed.Deposits = append(detailed.Deposits, reduced)
	}
	for _, vote := range votes {
		detailed.Votes = append(detailed.Votes, VoteReducer(vote, r))
	}
	detailed.DepositsSum = sum.StringFixed(atomsExponent)
	return detailed
}
