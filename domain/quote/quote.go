package quote

import (
	"github.com/shopspring/decimal"

	"github.com/footcaster/goapi/base/ctx"
)

// Quote converts a USD amount into the payment token at the current price.
type Quote struct {
	Usd         decimal.Decimal `json:"usd"`
	TokenAmount string          `json:"tokenAmount"`
	PriceUsd    decimal.Decimal `json:"priceUsd"`
	PriceSource string          `json:"priceSource"`
}

type UseCase interface {
	GetQuote(c ctx.Ctx, usd decimal.Decimal) (*Quote, error)
}
