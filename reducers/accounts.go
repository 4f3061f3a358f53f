package reducers

import (
	"strings"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/auth"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/tx"
	"github.com/DefiantLabs/lunie-core/network"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// toValidatorAddress re-encodes the bytes of an account address under the validator operator prefix.
func toValidatorAddress(address string, n *network.Network) (string, error) {
	_, bz, err := bech32.DecodeAndConvert(address)
	if err != nil {
		return "", err
	}
	return bech32.ConvertAndEncode(n.ValidatorPrefix(), bz)
}

// NetworkAccountReducer resolves an address into a displayable account. Addresses belonging to a
// validator operator show the validator's name and picture, any other address is shown as is.
func NetworkAccountReducer(address string, validators map[string]Validator, n *network.Network) NetworkAccount {
	account := NetworkAccount{
		Name:    address,
		Address: address,
	}
	if address == "" || len(validators) == 0 {
		return account
	}

	validatorAddress, err := toValidatorAddress(address, n)
	if err != nil {
		return account
	}
	if validator, ok := validators[validatorAddress]; ok {
		account.Name = validator.Name
		account.Picture = validator.Picture
	}
	return account
}

// AccountInfoReducer reads the base account fields, which vesting accounts nest one level deeper.
func AccountInfoReducer(value auth.AccountValue, accountType string) AccountInfo {
	base := value.BaseAccount
	if auth.IsVestingAccount(accountType) && value.BaseVestingAccount != nil {
		base = value.BaseVestingAccount.BaseAccount
	}
	return AccountInfo{
		Address:       base.Address,
		AccountNumber: base.AccountNumber,
		Sequence:      base.Sequence,
	}
}

// ExtractInvolvedAddresses lists the account addresses a transaction was tagged with.
// Failed transactions are not tagged and involve nobody.
func ExtractInvolvedAddresses(transaction tx.Transaction, n *network.Network) []string {
	addresses := []string{}
	if transaction.Tags == nil {
		return addresses
	}
	prefix := n.AccountPrefix()
	for _, tag := range transaction.Tags {
		if tag.Value == "" {
			continue
		}
		if strings.HasPrefix(tag.Value, prefix) {
			addresses = append(addresses, tag.Value)
		}
	}
	return addresses
}
