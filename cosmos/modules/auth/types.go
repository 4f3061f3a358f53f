package auth

import (
	"strings"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/bank"
)

type BaseAccount struct {
	Address       string `json:"address"`
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`
}

type BaseVestingAccount struct {
	BaseAccount      BaseAccount `json:"BaseAccount"`
	OriginalVesting  []bank.Coin `json:"original_vesting"`
	DelegatedFree    []bank.Coin `json:"delegated_free"`
	DelegatedVesting []bank.Coin `json:"delegated_vesting"`
	EndTime          string      `json:"end_time"`
}

// AccountValue is the "value" of an account query. Plain accounts carry the base fields inline,
// vesting accounts nest them under BaseVestingAccount.
type AccountValue struct {
	BaseAccount
	BaseVestingAccount *BaseVestingAccount `json:"BaseVestingAccount,omitempty"`
}

type Account struct {
	Type  string       `json:"type"`
	Value AccountValue `json:"value"`
}

func IsVestingAccount(accountType string) bool {
	return strings.Contains(accountType, "VestingAccount")
}
