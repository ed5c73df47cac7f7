package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/levenlabs/go-lflag"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/common"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const (
	SourceCache    = "cache"
	SourceFallback = "fallback"

	sourceCoinGecko = "coingecko"
	sourceMempool   = "mempool"

	pricesKey  = "prices"
	networkKey = "network"

	// blockReward is the subsidy since the 2024 halving.
	blockReward = 3.125
)

// Prices are spot prices with where they came from.
type Prices struct {
	types.CryptoPrices
	Source string `json:"source"`
}

// Network is the bitcoin network state with where it came from.
type Network struct {
	types.NetworkStats
	LastUpdated time.Time `json:"lastUpdated"`
	Source      string    `json:"source"`
}

// Client fetches crypto prices, network stats and solar estimates. Failed
// fetches fall back to static values so callers always get data.
type Client struct {
	coingeckoURL string
	mempoolURL   string
	pvwattsURL   string
	pvwattsKey   string
	ttl          time.Duration

	client *http.Client
	cache  Cache
	now    func() time.Time
}

// Configured registers the market flags and returns a Client resolved once
// flags are parsed.
func Configured() *Client {
	c := &Client{
		client: common.HTTPClient(10 * time.Second),
		now:    time.Now,
	}
	coingeckoURL := lflag.String("coingecko-url", "https://api.coingecko.com/api/v3", "Base URL of the CoinGecko API")
	mempoolURL := lflag.String("mempool-url", "https://mempool.space/api/v1", "Base URL of the mempool.space API")
	pvwattsURL := lflag.String("pvwatts-url", "https://developer.nrel.gov/api/pvwatts/v8.json", "URL of the NREL PVWatts v8 API")
	pvwattsKey := lflag.String("pvwatts-api-key", "", "NREL API key, estimates fall back to a latitude heuristic without it")
	ttl := lflag.Duration("market-cache-ttl", time.Minute, "How long fetched prices and network stats are reused")

	lflag.Do(func() {
		c.coingeckoURL = *coingeckoURL
		c.mempoolURL = *mempoolURL
		c.pvwattsURL = *pvwattsURL
		c.pvwattsKey = *pvwattsKey
		c.ttl = *ttl
		c.cache = NewTTLCache(c.now)
	})
	return c
}

// Option configures a Client built with NewClient.
type Option func(*Client)

// WithHTTPClient replaces the http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithCache replaces the cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithURLs points the client at different API endpoints.
func WithURLs(coingecko, mempool, pvwatts string) Option {
	return func(c *Client) {
		c.coingeckoURL = coingecko
		c.mempoolURL = mempool
		c.pvwattsURL = pvwatts
	}
}

// WithPVWattsKey sets the NREL API key.
func WithPVWattsKey(key string) Option {
	return func(c *Client) {
		c.pvwattsKey = key
	}
}

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client with the public endpoints and a one minute
// cache.
func NewClient(opts ...Option) *Client {
	c := &Client{
		coingeckoURL: "https://api.coingecko.com/api/v3",
		mempoolURL:   "https://mempool.space/api/v1",
		pvwattsURL:   "https://developer.nrel.gov/api/pvwatts/v8.json",
		ttl:          time.Minute,
		client:       common.HTTPClient(10 * time.Second),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = NewTTLCache(c.now)
	}
	return c
}

// MarketData returns the prices and network stats the mining calculator
// uses.
func (c *Client) MarketData(ctx context.Context) types.MarketData {
	return types.MarketData{
		Network: c.Network(ctx).NetworkStats,
		Prices:  c.Prices(ctx).CryptoPrices,
	}
}

// Prices returns spot prices from CoinGecko, the cache or the fallback.
func (c *Client) Prices(ctx context.Context) Prices {
	if v, ok := c.cache.Get(pricesKey); ok {
		if p, ok := v.(Prices); ok {
			p.Source = SourceCache
			return p
		}
	}

	p, err := c.fetchPrices(ctx)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to fetch crypto prices", slog.Any("error", err))
		fallback := types.DefaultCryptoPrices()
		fallback.LastUpdated = c.now()
		return Prices{CryptoPrices: fallback, Source: SourceFallback}
	}
	c.cache.Set(pricesKey, p, c.ttl)
	return p
}

type coingeckoPrice struct {
	USD float64 `json:"usd"`
}

func (c *Client) fetchPrices(ctx context.Context) (Prices, error) {
	var data map[string]coingeckoPrice
	u := c.coingeckoURL + "/simple/price?ids=bitcoin,litecoin,ravencoin,ergo,zelcash&vs_currencies=usd"
	if err := c.getJSON(ctx, u, &data); err != nil {
		return Prices{}, fmt.Errorf("coingecko: %w", err)
	}

	def := types.DefaultCryptoPrices()
	price := func(id string, fallback float64) float64 {
		if p, ok := data[id]; ok && p.USD > 0 {
			return p.USD
		}
		return fallback
	}
	return Prices{
		CryptoPrices: types.CryptoPrices{
			Bitcoin:     price("bitcoin", def.Bitcoin),
			Litecoin:    price("litecoin", def.Litecoin),
			Ravencoin:   price("ravencoin", def.Ravencoin),
			Ergo:        price("ergo", def.Ergo),
			Flux:        price("zelcash", def.Flux),
			LastUpdated: c.now(),
		},
		Source: sourceCoinGecko,
	}, nil
}

// Network returns bitcoin network stats from mempool.space, the cache or the
// fallback.
func (c *Client) Network(ctx context.Context) Network {
	if v, ok := c.cache.Get(networkKey); ok {
		if n, ok := v.(Network); ok {
			n.Source = SourceCache
			return n
		}
	}

	n, err := c.fetchNetwork(ctx)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to fetch network stats", slog.Any("error", err))
		return Network{NetworkStats: types.DefaultNetworkStats(), LastUpdated: c.now(), Source: SourceFallback}
	}
	c.cache.Set(networkKey, n, c.ttl)
	return n
}

type mempoolDifficulty struct {
	DifficultyChange float64 `json:"difficultyChange"`
	// TimeAvg is the average block time in milliseconds.
	TimeAvg float64 `json:"timeAvg"`
}

type mempoolHashrates struct {
	Hashrates []struct {
		Timestamp   int64   `json:"timestamp"`
		AvgHashrate float64 `json:"avgHashrate"`
	} `json:"hashrates"`
	CurrentHashrate   float64 `json:"currentHashrate"`
	CurrentDifficulty float64 `json:"currentDifficulty"`
}

func (c *Client) fetchNetwork(ctx context.Context) (Network, error) {
	var diff mempoolDifficulty
	if err := c.getJSON(ctx, c.mempoolURL+"/difficulty-adjustment", &diff); err != nil {
		return Network{}, fmt.Errorf("mempool difficulty: %w", err)
	}
	var hash mempoolHashrates
	if err := c.getJSON(ctx, c.mempoolURL+"/mining/hashrate/1m", &hash); err != nil {
		return Network{}, fmt.Errorf("mempool hashrate: %w", err)
	}

	def := types.DefaultNetworkStats()
	stats := types.NetworkStats{
		NetworkHashrateEH:               def.NetworkHashrateEH,
		Difficulty:                      def.Difficulty,
		BlockReward:                     blockReward,
		AvgBlockTimeSeconds:             def.AvgBlockTimeSeconds,
		NextDifficultyAdjustmentPercent: diff.DifficultyChange,
	}
	hashrate := hash.CurrentHashrate
	if n := len(hash.Hashrates); n > 0 {
		hashrate = hash.Hashrates[n-1].AvgHashrate
	}
	if hashrate > 0 {
		stats.NetworkHashrateEH = hashrate / 1e18
	}
	if hash.CurrentDifficulty > 0 {
		stats.Difficulty = hash.CurrentDifficulty
	}
	if diff.TimeAvg > 0 {
		stats.AvgBlockTimeSeconds = diff.TimeAvg / 1000
	}
	return Network{NetworkStats: stats, LastUpdated: c.now(), Source: sourceMempool}, nil
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
