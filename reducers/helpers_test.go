package reducers

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var errPriceUnavailable = errors.New("price unavailable")

// fakeFiatAPI prices coins from a fixed table and fails for denominations listed in failing.
type fakeFiatAPI struct {
	mu      sync.Mutex
	prices  map[string]decimal.Decimal
	failing map[string]bool
	calls   int
}

func (f *fakeFiatAPI) CalculateFiatValues(_ context.Context, coins []Coin, fiatCurrency string) (map[string]FiatValue, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	values := make(map[string]FiatValue, len(coins))
	for _, coin := range coins {
		if f.failing[coin.Denom] {
			return nil, errPriceUnavailable
		}
		price, ok := f.prices[coin.Denom]
		if !ok {
			continue
		}
		values[coin.Denom] = FiatValue{Amount: coin.Amount.Mul(price), Denom: fiatCurrency}
	}
	return values, nil
}
