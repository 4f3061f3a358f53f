package staking

import "github.com/shopspring/decimal"

// BondStatusBonded is the raw status code of validators in the active set.
const BondStatusBonded = 2

type Description struct {
	Moniker  string `json:"moniker"`
	Identity string `json:"identity"`
	Website  string `json:"website"`
	Details  string `json:"details"`
}

type Commission struct {
	Rate          string `json:"rate"`
	MaxRate       string `json:"max_rate"`
	MaxChangeRate string `json:"max_change_rate"`
	UpdateTime    string `json:"update_time"`
}

// SigningInfo is the slashing module record of a validator. Validators that never signed a block have none.
type SigningInfo struct {
	Address             string `json:"address"`
	StartHeight         string `json:"start_height"`
	IndexOffset         string `json:"index_offset"`
	JailedUntil         string `json:"jailed_until"`
	Tombstoned          bool   `json:"tombstoned"`
	MissedBlocksCounter string `json:"missed_blocks_counter"`
}

type Validator struct {
	OperatorAddress string       `json:"operator_address"`
	ConsensusPubkey string       `json:"consensus_pubkey"`
	Jailed          bool         `json:"jailed"`
	Status          int          `json:"status"`
	Tokens          string       `json:"tokens"`
	DelegatorShares string       `json:"delegator_shares"`
	Description     Description  `json:"description"`
	Commission      Commission   `json:"commission"`
	SigningInfo     *SigningInfo `json:"signing_info,omitempty"`
	// VotingPower is derived by the caller from the validator's share of bonded tokens.
	VotingPower decimal.Decimal `json:"voting_power"`
	Popularity  *int64          `json:"popularity,omitempty"`
}

type Delegation struct {
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
	Shares           string `json:"shares"`
}

// UnbondingDelegation is a single unbonding entry flattened with its delegator and validator.
type UnbondingDelegation struct {
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
	CreationHeight   string `json:"creation_height"`
	CompletionTime   string `json:"completion_time"`
	InitialBalance   string `json:"initial_balance"`
	Balance          string `json:"balance"`
}

type Pool struct {
	BondedTokens    string `json:"bonded_tokens"`
	NotBondedTokens string `json:"not_bonded_tokens"`
}

type Params struct {
	UnbondingTime string `json:"unbonding_time"`
	MaxValidators int    `json:"max_validators"`
	BondDenom     string `json:"bond_denom"`
}
