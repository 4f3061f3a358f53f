// Package fiat values coins in fiat currencies using a CoinGecko style simple price API.
package fiat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/DefiantLabs/lunie-core/rest"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const simplePriceEndpoint = "/simple/price"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CHF": "CHF",
	"KRW": "₩",
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	// priceIDs maps display denominations to the ids the price API knows them by.
	priceIDs map[string]string
	prices   *cache.Cache
	limiter  *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPriceIDs adds display denomination to price id mappings, e.g. ATOM -> cosmos.
func WithPriceIDs(ids map[string]string) Option {
	return func(c *Client) {
		for denom, id := range ids {
			c.priceIDs[denom] = id
		}
	}
}

func NewClient(baseURL string, requestsPerSecond float64, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		priceIDs: map[string]string{
			"ATOM": "cosmos",
			"NGM":  "e-money",
			"KAVA": "kava",
			"AKT":  "akash-network",
			"LUNA": "terra-luna",
		},
		prices:  cache.New(cacheTTL, 10*time.Minute),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func priceCacheKey(id string, currency string) string {
	return fmt.Sprintf("%s_%s", id, currency)
}

// CalculateFiatValues values each coin in fiatCurrency. Coins without a known price are left out of the result.
func (c *Client) CalculateFiatValues(ctx context.Context, coins []reducers.Coin, fiatCurrency string) (map[string]reducers.FiatValue, error) {
	currency := strings.ToLower(fiatCurrency)

	missing := make(map[string]struct{})
	for _, coin := range coins {
		id, ok := c.priceIDs[coin.Denom]
		if !ok {
			continue
		}
		if _, found := c.prices.Get(priceCacheKey(id, currency)); !found {
			missing[id] = struct{}{}
		}
	}
	if len(missing) > 0 {
		if err := c.fetchPrices(ctx, missing, currency); err != nil {
			return nil, err
		}
	}

	values := make(map[string]reducers.FiatValue, len(coins))
	for _, coin := range coins {
		id, ok := c.priceIDs[coin.Denom]
		if !ok {
			config.Log.Debugf("No price id for %s", coin.Denom)
			continue
		}
		cached, found := c.prices.Get(priceCacheKey(id, currency))
		if !found {
			continue
		}
		price := cached.(decimal.Decimal)
		values[coin.Denom] = reducers.FiatValue{
			Amount: coin.Amount.Mul(price),
			Denom:  strings.ToUpper(fiatCurrency),
			Symbol: currencySymbols[strings.ToUpper(fiatCurrency)],
		}
	}
	return values, nil
}

// fetchPrices loads the prices of ids in one request and caches them.
func (c *Client) fetchPrices(ctx context.Context, ids map[string]struct{}, currency string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	idList := make([]string, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}
	sort.Strings(idList)

	query := url.Values{}
	query.Set("ids", strings.Join(idList, ","))
	query.Set("vs_currencies", currency)
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, simplePriceEndpoint, query.Encode())

	var result map[string]map[string]decimal.Decimal
	if err := rest.GetJSON(ctx, c.httpClient, requestURL, &result); err != nil {
		return fmt.Errorf("fetching %s prices: %w", currency, err)
	}

	for id, quotes := range result {
		price, ok := quotes[currency]
		if !ok {
			continue
		}
		c.prices.Set(priceCacheKey(id, currency), price, cache.DefaultExpiration)
	}
	return nil
}
