package reducers

import (
	"context"

	"github.com/shopspring/decimal"
)

// FiatValueAPI values coins in a fiat currency. The result is keyed by coin denomination.
type FiatValueAPI interface {
	CalculateFiatValues(ctx context.Context, coins []Coin, fiatCurrency string) (map[string]FiatValue, error)
}

// FiatValueFunc values a single coin.
type FiatValueFunc func(ctx context.Context, coin Coin, fiatCurrency string) (*FiatValue, error)

// FiatValueFuncFor adapts a FiatValueAPI to value one coin at a time.
func FiatValueFuncFor(api FiatValueAPI) FiatValueFunc {
	if api == nil {
		return nil
	}
	return func(ctx context.Context, coin Coin, fiatCurrency string) (*FiatValue, error) {
		values, err := api.CalculateFiatValues(ctx, []Coin{coin}, fiatCurrency)
		if err != nil {
			return nil, err
		}
		value, ok := values[coin.Denom]
		if !ok {
			return nil, nil
		}
		return &value, nil
	}
}

func TotalStakeFiatValueReducer(
	ctx context.Context,
	api FiatValueAPI,
	fiatCurrency string,
	totalStake decimal.Decimal,
	stakingDenom string,
) (*FiatValue, error) {
	values, err := api.CalculateFiatValues(ctx, []Coin{{Denom: stakingDenom, Amount: totalStake}}, fiatCurrency)
	if err != nil {
		return nil, err
	}
	value, ok := values[stakingDenom]
	if !ok {
		return nil, nil
	}
	return &value, nil
}
