package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/quote"
	"github.com/footcaster/goapi/service/pricefeed"
)

type QuoteUseCaseCfg struct {
	Pricefeed pricefeed.Client
}

type impl struct {
	pricefeed pricefeed.Client
}

func New(cfg *QuoteUseCaseCfg) quote.UseCase {
	return &impl{
		pricefeed: cfg.Pricefeed,
	}
}

func (im *impl) GetQuote(c ctx.Ctx, usd decimal.Decimal) (*quote.Quote, error) {
	if usd.IsNegative() || usd.IsZero() {
		return nil, domain.ErrBadParamInput
	}

	price, err := im.pricefeed.GetPrice(c)
	if err != nil {
		c.WithField("err", err).Error("pricefeed.GetPrice failed")
		return nil, err
	}

	amount, err := pricefeed.CalculateAmount(usd, price.Usd)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"usd":   usd,
			"price": price.Usd,
		}).Error("pricefeed.CalculateAmount failed")
		return nil, err
	}

	return &quote.Quote{
		Usd:         usd,
		TokenAmount: amount.String(),
		PriceUsd:    price.Usd,
		PriceSource: price.Source,
	}, nil
}
