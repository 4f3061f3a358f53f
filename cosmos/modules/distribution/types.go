package distribution

import "github.com/DefiantLabs/lunie-core/cosmos/modules/bank"

// Reward is the outstanding reward of a delegator with a single validator. Amounts are decimal coins.
type Reward struct {
	ValidatorAddress string      `json:"validator_address"`
	Reward           []bank.Coin `json:"reward"`
}
