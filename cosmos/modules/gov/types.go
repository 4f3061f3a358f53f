package gov

import "github.com/DefiantLabs/lunie-core/cosmos/modules/bank"

// Raw proposal statuses as reported by the gov module.
const (
	StatusDepositPeriod = "DepositPeriod"
	StatusVotingPeriod  = "VotingPeriod"
	StatusPassed        = "Passed"
	StatusRejected      = "Rejected"
)

type TallyResult struct {
	Yes        string `json:"yes"`
	Abstain    string `json:"abstain"`
	No         string `json:"no"`
	NoWithVeto string `json:"no_with_veto"`
}

type ContentValue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Content struct {
	Type  string       `json:"type"`
	Value ContentValue `json:"value"`
}

type Proposal struct {
	ProposalID       string      `json:"proposal_id"`
	ProposalContent  Content     `json:"proposal_content"`
	ProposalStatus   string      `json:"proposal_status"`
	FinalTallyResult TallyResult `json:"final_tally_result"`
	SubmitTime       string      `json:"submit_time"`
	DepositEndTime   string      `json:"deposit_end_time"`
	TotalDeposit     []bank.Coin `json:"total_deposit"`
	VotingStartTime  string      `json:"voting_start_time"`
	VotingEndTime    string      `json:"voting_end_time"`
}

type Proposer struct {
	ProposalID string `json:"proposal_id"`
	Proposer   string `json:"proposer"`
}

type Deposit struct {
	ProposalID string      `json:"proposal_id"`
	Depositor  string      `json:"depositor"`
	Amount     []bank.Coin `json:"amount"`
}

type Vote struct {
	ProposalID string `json:"proposal_id"`
	Voter      string `json:"voter"`
	Option     string `json:"option"`
}

type DepositParams struct {
	MinDeposit       []bank.Coin `json:"min_deposit"`
	MaxDepositPeriod string      `json:"max_deposit_period"`
}

type TallyParams struct {
	Quorum    string `json:"quorum"`
	Threshold string `json:"threshold"`
	Veto      string `json:"veto"`
}
