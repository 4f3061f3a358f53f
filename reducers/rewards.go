package reducers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/bank"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/distribution"
	"github.com/DefiantLabs/lunie-core/network"
	"github.com/DefiantLabs/lunie-core/util"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// rewardDustThreshold is the smallest reward amount worth showing.
var rewardDustThreshold = decimal.New(1, -6)

var (
	rewardDenomRegex  = regexp.MustCompile(`(?i)[a-z]+`)
	rewardAmountRegex = regexp.MustCompile(`[0-9]+`)
)

// RewardCoinReducer parses rewards as they appear in event logs, e.g. "15000umuon" or
// "15000ungm,100000uchf" on multi-denomination networks. Each amount is converted with the
// conversion factor of its own denomination.
func RewardCoinReducer(reward string, r Reducers, n *network.Network) []Coin {
	pairs := strings.Split(reward, ",")
	coins := make([]Coin, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		chainDenom := rewardDenomRegex.FindString(pair)
		amount := rewardAmountRegex.FindString(pair)
		if chainDenom == "" || amount == "" {
			continue
		}

		denom := r.DenomLookup(chainDenom)
		lookup := n.GetCoinLookup(denom, network.ViewDenomKey)
		amountDec, err := decimal.NewFromString(amount)
		if err != nil {
			continue
		}
		coins = append(coins, Coin{
			Denom:  denom,
			Amount: amountDec.Mul(lookup.Factor()),
		})
	}
	return coins
}

type rewardSlot struct {
	reward Reward
	ok     bool
}

// RewardReducer flattens the rewards of all validators into one entry per validator and denomination.
// Lookups run concurrently; rewards of unknown validators, dust amounts and entries whose fiat
// valuation fails are dropped without affecting the others. The result keeps input order.
func RewardReducer(
	ctx context.Context,
	rewards []distribution.Reward,
	validators map[string]Validator,
	fiatCurrency string,
	calculateFiatValue FiatValueFunc,
	r Reducers,
	n *network.Network,
) []Reward {
	slots := make([][]rewardSlot, len(rewards))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, reward := range rewards {
		validator, found := validators[reward.ValidatorAddress]
		if !found {
			config.Log.Debugf("Dropping rewards of unknown validator %s", reward.ValidatorAddress)
			continue
		}
		slots[i] = make([]rewardSlot, len(reward.Reward))
		for j := range reward.Reward {
			denomReward := reward.Reward[j]
			eg.Go(func() error {
				entry, ok := reduceDenomReward(egCtx, denomReward, validator, fiatCurrency, calculateFiatValue, r, n)
				slots[i][j] = rewardSlot{reward: entry, ok: ok}
				// failures are isolated to their own entry
				return nil
			})
		}
	}
	_ = eg.Wait()

	result := make([]Reward, 0)
	for _, validatorSlots := range slots {
		for _, slot := range validatorSlots {
			if slot.ok {
				result = append(result, slot.reward)
			}
		}
	}
	return result
}

func reduceDenomReward(
	ctx context.Context,
	denomReward bank.Coin,
	validator Validator,
	fiatCurrency string,
	calculateFiatValue FiatValueFunc,
	r Reducers,
	n *network.Network,
) (Reward, bool) {
	lookup := n.GetCoinLookup(denomReward.Denom, network.ChainDenomKey)
	coin := r.CoinReducer(&denomReward, lookup)
	if coin.Amount.LessThan(rewardDustThreshold) {
		return Reward{}, false
	}

	var fiatValue *FiatValue
	if calculateFiatValue != nil {
		value, err := calculateFiatValue(ctx, coin, fiatCurrency)
		if err != nil {
			config.Log.Warnf("Dropping %s reward of validator %s, fiat valuation failed. Err: %v", coin.Denom, validator.OperatorAddress, err)
			return Reward{}, false
		}
		fiatValue = value
	}

	return Reward{
		ID:        fmt.Sprintf("%s_%s_%s", validator.OperatorAddress, coin.Denom, fiatCurrency),
		Denom:     coin.Denom,
		Amount:    util.FixDecimalsAndRoundUp(coin.Amount, atomsExponent),
		FiatValue: fiatValue,
		Validator: validator,
	}, true
}
