package pricefeed

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"regexp"
	"time"

	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/keys"
	"github.com/footcaster/goapi/service/cache"
	"github.com/footcaster/goapi/service/cache/provider/primitive"
	"github.com/shopspring/decimal"
)

var (
	dollarPattern   = regexp.MustCompile(`\$\s*([0-9]+(?:\.[0-9]+)?)`)
	priceUsdPattern = regexp.MustCompile(`(?i)priceUsd"?\s*[:=]\s*"?([0-9]+(?:\.[0-9]+)?)`)
)

const priceCacheKey = "tokenUsd"

type client struct {
	client  http.Client
	timeout time.Duration
	cache   cache.Service

	customUrl      string
	dexscreenerUrl string
	clankerUrl     string
}

func NewClient(cfg *ClientCfg) Client {
	ttl := cfg.CacheTtl
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &client{
		client:         cfg.HttpClient,
		timeout:        timeout,
		customUrl:      cfg.CustomUrl,
		dexscreenerUrl: cfg.DexscreenerUrl,
		clankerUrl:     cfg.ClankerUrl,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   "pricefeed_cache",
			Cache: primitive.NewPrimitive("pricefeed_cache", 1),
		}),
	}
}

func (c *client) GetPrice(ctx bCtx.Ctx) (*Price, error) {
	key := keys.RedisKey(priceCacheKey)
	var price Price
	if err := c.cache.GetByFunc(ctx, key, &price, func() (interface{}, error) {
		return c.fetchPrice(ctx)
	}); err != nil {
		return nil, err
	}
	return &price, nil
}

// fetchPrice walks the ranked sources and returns the first usable price.
func (c *client) fetchPrice(ctx bCtx.Ctx) (*Price, error) {
	type source struct {
		name  string
		fetch func(bCtx.Ctx) (decimal.Decimal, error)
	}
	sources := []source{}
	if len(c.customUrl) > 0 {
		sources = append(sources, source{SourceCustom, c.fetchFromCustom})
	}
	sources = append(sources,
		source{SourceDexscreener, c.fetchFromDexscreener},
		source{SourceClanker, c.fetchFromClanker},
	)

	for _, s := range sources {
		price, err := s.fetch(ctx)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"source": s.name,
			}).Warn("price source failed")
			continue
		}
		if price.Sign() <= 0 {
			ctx.WithFields(log.Fields{
				"price":  price,
				"source": s.name,
			}).Warn("price source returned non-positive price")
			return nil, domain.ErrInvalidPriceData
		}
		return &Price{Usd: price, Source: s.name}, nil
	}

	return nil, domain.ErrPriceUnavailable
}

func (c *client) fetchFromDexscreener(ctx bCtx.Ctx) (decimal.Decimal, error) {
	data, err := c.get(ctx, c.dexscreenerUrl, "application/json")
	if err != nil {
		return decimal.Zero, err
	}
	resp := dexscreenerResp{}
	if err := json.Unmarshal(data, &resp); err != nil {
		return decimal.Zero, err
	}
	if len(resp.Pairs) == 0 || len(resp.Pairs[0].PriceUsd) == 0 {
		return decimal.Zero, ErrNoPriceInBody
	}
	return decimal.NewFromString(resp.Pairs[0].PriceUsd)
}

func (c *client) fetchFromClanker(ctx bCtx.Ctx) (decimal.Decimal, error) {
	data, err := c.get(ctx, c.clankerUrl, "text/html,*/*")
	if err != nil {
		return decimal.Zero, err
	}
	match := dollarPattern.FindSubmatch(data)
	if match == nil {
		return decimal.Zero, ErrNoPriceInBody
	}
	return decimal.NewFromString(string(match[1]))
}

// fetchFromCustom accepts JSON payloads with priceUsd/price_usd/price/usd
// fields, nested under data or not, and falls back to scanning the body for
// a numeric price.
func (c *client) fetchFromCustom(ctx bCtx.Ctx) (decimal.Decimal, error) {
	data, err := c.get(ctx, c.customUrl, "application/json,*/*")
	if err != nil {
		return decimal.Zero, err
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err == nil {
		if price, ok := probePriceFields(body); ok {
			return price, nil
		}
		if nested, ok := body["data"].(map[string]interface{}); ok {
			if price, ok := probePriceFields(nested); ok {
				return price, nil
			}
		}
	}

	if match := priceUsdPattern.FindSubmatch(data); match != nil {
		return decimal.NewFromString(string(match[1]))
	}
	if match := dollarPattern.FindSubmatch(data); match != nil {
		return decimal.NewFromString(string(match[1]))
	}
	return decimal.Zero, ErrNoPriceInBody
}

func probePriceFields(body map[string]interface{}) (decimal.Decimal, bool) {
	for _, field := range []string{"priceUsd", "price_usd", "price", "usd"} {
		switch v := body[field].(type) {
		case string:
			if price, err := decimal.NewFromString(v); err == nil && price.Sign() > 0 {
				return price, true
			}
		case float64:
			if price := decimal.NewFromFloat(v); price.Sign() > 0 {
				return price, true
			}
		}
	}
	return decimal.Zero, false
}

func (c *client) get(ctx bCtx.Ctx, url, accept string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrStatusCodeNotOk
	}
	return ioutil.ReadAll(resp.Body)
}
