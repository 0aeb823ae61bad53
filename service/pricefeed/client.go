package pricefeed

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/shopspring/decimal"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrNoPriceInBody   = errors.New("no usable price in response body")
)

// Source names, reported with every quote so callers can tell where the
// price came from.
const (
	SourceCustom      = "custom"
	SourceDexscreener = "dexscreener"
	SourceClanker     = "clanker"
)

// Price is a USD price for the payment token together with its provenance.
type Price struct {
	Usd    decimal.Decimal `json:"usd"`
	Source string          `json:"source"`
}

// Client fetches the payment token's USD price from a ranked list of
// sources, falling down the list on failure. Results are cached for a short
// TTL; stale reads inside the TTL are acceptable for pricing.
type Client interface {
	GetPrice(c bCtx.Ctx) (*Price, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	CacheTtl   time.Duration

	// CustomUrl is an optional highest-priority endpoint returning JSON like
	// {"priceUsd": "0.123"} or {"price_usd": 0.123}
	CustomUrl string
	// DexscreenerUrl is the token pair endpoint on Dexscreener
	DexscreenerUrl string
	// ClankerUrl is the token page on clanker.world, scraped for a $<n>
	// pattern as the last resort
	ClankerUrl string
}

// dexscreenerResp is the subset of the Dexscreener pair response we read
type dexscreenerResp struct {
	Pairs []struct {
		PriceUsd string `json:"priceUsd"`
	} `json:"pairs"`
}
