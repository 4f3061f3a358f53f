package reducers

import (
	"context"
	"errors"
	"fmt"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/bank"
	"github.com/DefiantLabs/lunie-core/util"
	"github.com/alitto/pond/v2"
)

// ErrUnsupportedToken is returned when a token has no gas price, so no request can be built for it.
var ErrUnsupportedToken = errors.New("the token you are trying to request data for is not supported")

const balanceWorkers = 8

func GasPriceReducer(gasPrice *bank.GasPrice, r Reducers) (GasPrice, error) {
	if gasPrice == nil {
		return GasPrice{}, ErrUnsupportedToken
	}
	return GasPrice{
		Denom: r.DenomLookup(gasPrice.Denom),
		// gas prices are assumed to be quoted in micro units
		Price: util.ToDecimal(gasPrice.Price).Shift(-atomsExponent),
	}, nil
}

// BalanceReducer attaches the gas price of the coin's denomination when gas prices are known.
func BalanceReducer(coin Coin, gasPrices []bank.GasPrice, fiatValue *FiatValue, r Reducers) (Balance, error) {
	balance := Balance{
		ID:        coin.Denom,
		Denom:     coin.Denom,
		Amount:    coin.Amount,
		FiatValue: fiatValue,
	}
	if gasPrices == nil {
		return balance, nil
	}

	var match *bank.GasPrice
	for i := range gasPrices {
		if r.DenomLookup(gasPrices[i].Denom) == coin.Denom {
			match = &gasPrices[i]
			break
		}
	}
	gasPrice, err := GasPriceReducer(match, r)
	if err != nil {
		return Balance{}, fmt.Errorf("gas price for %s: %w", coin.Denom, err)
	}
	balance.GasPrice = &gasPrice.Price
	return balance, nil
}

// BalanceV2Reducer reports the balance of one denomination. For the staking denomination the total
// includes tokens that are delegated or undelegating, even though they cannot be spent.
// A failing fiat valuation leaves the fiat values empty.
func BalanceV2Reducer(
	ctx context.Context,
	coin Coin,
	stakingDenom string,
	delegations []Delegation,
	undelegations []Undelegation,
	fiatValueAPI FiatValueAPI,
	fiatCurrency string,
) BalanceView {
	isStakingDenom := coin.Denom == stakingDenom

	total := coin.Amount
	if isStakingDenom {
		for _, delegation := range delegations {
			total = total.Add(delegation.Amount)
		}
		for _, undelegation := range undelegations {
			total = total.Add(undelegation.Amount)
		}
	}

	view := BalanceView{
		ID:        coin.Denom,
		Type:      BalanceTypeCurrency,
		Total:     total,
		Denom:     coin.Denom,
		Available: coin.Amount,
	}
	if isStakingDenom {
		view.Type = BalanceTypeStake
	}
	if fiatValueAPI == nil {
		return view
	}

	view.FiatValue = fiatValueOf(ctx, fiatValueAPI, Coin{Denom: coin.Denom, Amount: total}, fiatCurrency)
	view.AvailableFiatValue = fiatValueOf(ctx, fiatValueAPI, coin, fiatCurrency)
	return view
}

func fiatValueOf(ctx context.Context, api FiatValueAPI, coin Coin, fiatCurrency string) *FiatValue {
	values, err := api.CalculateFiatValues(ctx, []Coin{coin}, fiatCurrency)
	if err != nil {
		config.Log.Warnf("Could not value %s in %s. Err: %v", coin.Denom, fiatCurrency, err)
		return nil
	}
	value, ok := values[coin.Denom]
	if !ok {
		return nil
	}
	return &value
}

// BalancesV2Reducer reduces the balances of all coins of an account on a bounded worker pool.
// The result has the order of coins.
func BalancesV2Reducer(
	ctx context.Context,
	coins []Coin,
	stakingDenom string,
	delegations []Delegation,
	undelegations []Undelegation,
	fiatValueAPI FiatValueAPI,
	fiatCurrency string,
) []BalanceView {
	views := make([]BalanceView, len(coins))
	if len(coins) == 0 {
		return views
	}

	pool := pond.NewPool(balanceWorkers)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	for i := range coins {
		coin := coins[i]
		group.Submit(func() {
			views[i] = BalanceV2Reducer(ctx, coin, stakingDenom, delegations, undelegations, fiatValueAPI, fiatCurrency)
		})
	}
	if err := group.Wait(); err != nil {
		config.Log.Warnf("Balance reduction interrupted. Err: %v", err)
	}
	return views
}
