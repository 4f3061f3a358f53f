package reducers

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ValidatorStatusActive   = "ACTIVE"
	ValidatorStatusInactive = "INACTIVE"

	ValidatorStatusDetailedActive   = "active"
	ValidatorStatusDetailedBanned   = "banned"
	ValidatorStatusDetailedInactive = "inactive"

	BalanceTypeStake    = "STAKE"
	BalanceTypeCurrency = "CURRENCY"
)

// Coin is an amount in display units, e.g. 1.5 ATOM rather than 1500000 uatom.
type Coin struct {
	Denom  string          `json:"denom"`
	Amount decimal.Decimal `json:"amount"`
}

type FiatValue struct {
	Amount decimal.Decimal `json:"amount"`
	Denom  string          `json:"denom"`
	Symbol string          `json:"symbol,omitempty"`
}

type NetworkAccount struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Picture string `json:"picture"`
}

type Tally struct {
	Yes     string `json:"yes"`
	No      string `json:"no"`
	Abstain string `json:"abstain"`
	Veto    string `json:"veto"`
	Total   string `json:"total"`
	// TotalVotedPercentage is a ratio in [0,1], or -1 when it cannot be computed.
	TotalVotedPercentage float64 `json:"totalVotedPercentage"`
}

type DetailedVotes struct {
	Deposits    []Deposit `json:"deposits"`
	Votes       []Vote    `json:"votes"`
	DepositsSum string    `json:"depositsSum"`
	VotesSum    int       `json:"votesSum"`
}

type Proposal struct {
	ID              int64          `json:"id"`
	NetworkID       string         `json:"networkId"`
	Type            string         `json:"type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	CreationTime    *time.Time     `json:"creationTime,omitempty"`
	Status          string         `json:"status"`
	StatusBeginTime *time.Time     `json:"statusBeginTime,omitempty"`
	StatusEndTime   *time.Time     `json:"statusEndTime,omitempty"`
	Tally           Tally          `json:"tally"`
	Deposit         string         `json:"deposit"`
	Proposer        NetworkAccount `json:"proposer"`
	DetailedVotes   *DetailedVotes `json:"detailedVotes,omitempty"`
}

type Deposit struct {
	Amount    []Coin         `json:"amount"`
	Depositor NetworkAccount `json:"depositor"`
}

type Vote struct {
	ID     string         `json:"id"`
	Voter  NetworkAccount `json:"voter"`
	Option string         `json:"option"`
}

type GovernanceParameters struct {
	VotingThreshold  string          `json:"votingThreshold"`
	VetoThreshold    string          `json:"vetoThreshold"`
	DepositDenom     string          `json:"depositDenom"`
	DepositThreshold decimal.Decimal `json:"depositThreshold"`
}

type Validator struct {
	ID                   string          `json:"id"`
	NetworkID            string          `json:"networkId"`
	OperatorAddress      string          `json:"operatorAddress"`
	ConsensusPubkey      string          `json:"consensusPubkey"`
	Jailed               bool            `json:"jailed"`
	Details              string          `json:"details"`
	Website              string          `json:"website"`
	Identity             string          `json:"identity"`
	Name                 string          `json:"name"`
	Picture              string          `json:"picture,omitempty"`
	VotingPower          string          `json:"votingPower"`
	StartHeight          string          `json:"startHeight,omitempty"`
	UptimePercentage     decimal.Decimal `json:"uptimePercentage"`
	Tokens               string          `json:"tokens"`
	CommissionUpdateTime string          `json:"commissionUpdateTime"`
	Commission           string          `json:"commission"`
	MaxCommission        string          `json:"maxCommission"`
	MaxChangeCommission  string          `json:"maxChangeCommission"`
	Status               string          `json:"status"`
	StatusDetailed       string          `json:"statusDetailed"`
	// DelegatorShares is kept raw, together with Tokens it defines the share to token rate.
	DelegatorShares string `json:"delegatorShares"`
	Popularity      *int64 `json:"popularity,omitempty"`
}

type ValidatorStatus struct {
	Status         string
	StatusDetailed string
}

type TopVoter struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	VotingPower string    `json:"votingPower"`
	Validator   Validator `json:"validator"`
}

type Delegation struct {
	ID               string          `json:"id"`
	ValidatorAddress string          `json:"validatorAddress"`
	DelegatorAddress string          `json:"delegatorAddress"`
	Validator        Validator       `json:"validator"`
	Amount           decimal.Decimal `json:"amount"`
	Active           bool            `json:"active"`
}

type Undelegation struct {
	ID               string          `json:"id"`
	DelegatorAddress string          `json:"delegatorAddress"`
	Validator        Validator       `json:"validator"`
	Amount           decimal.Decimal `json:"amount"`
	StartHeight      string          `json:"startHeight"`
	EndTime          string          `json:"endTime"`
}

type Reward struct {
	ID        string     `json:"id"`
	Denom     string     `json:"denom"`
	Amount    string     `json:"amount"`
	FiatValue *FiatValue `json:"fiatValue,omitempty"`
	Validator Validator  `json:"validator"`
}

type GasPrice struct {
	Denom string          `json:"denom"`
	Price decimal.Decimal `json:"price"`
}

type Balance struct {
	ID        string           `json:"id"`
	Denom     string           `json:"denom"`
	Amount    decimal.Decimal  `json:"amount"`
	FiatValue *FiatValue       `json:"fiatValue,omitempty"`
	GasPrice  *decimal.Decimal `json:"gasPrice"`
}

type BalanceView struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	Total              decimal.Decimal `json:"total"`
	Denom              string          `json:"denom"`
	FiatValue          *FiatValue      `json:"fiatValue,omitempty"`
	Available          decimal.Decimal `json:"available"`
	AvailableFiatValue *FiatValue      `json:"availableFiatValue,omitempty"`
}

type Block struct {
	ID              string            `json:"id"`
	NetworkID       string            `json:"networkId"`
	Height          string            `json:"height"`
	ChainID         string            `json:"chainId"`
	Hash            string            `json:"hash"`
	Time            string            `json:"time"`
	Transactions    []json.RawMessage `json:"transactions"`
	ProposerAddress string            `json:"proposer_address"`
	Data            string            `json:"data"`
}

type AccountInfo struct {
	Address       string `json:"address"`
	AccountNumber string `json:"accountNumber"`
	Sequence      string `json:"sequence"`
}
