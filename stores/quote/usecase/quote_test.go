package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/service/pricefeed"
	mPricefeed "github.com/footcaster/goapi/service/pricefeed/mocks"
)

func TestGetQuote(t *testing.T) {
	feed := &mPricefeed.Client{}
	feed.On("GetPrice", mock.Anything).Return(&pricefeed.Price{
		Usd:    decimal.RequireFromString("0.5"),
		Source: pricefeed.SourceDexscreener,
	}, nil).Once()

	u := New(&QuoteUseCaseCfg{Pricefeed: feed})
	q, err := u.GetQuote(bCtx.Background(), decimal.RequireFromString("10"))
	require.NoError(t, err)

	assert.Equal(t, "20000000000000000000", q.TokenAmount)
	assert.Equal(t, pricefeed.SourceDexscreener, q.PriceSource)
	assert.True(t, q.PriceUsd.Equal(decimal.RequireFromString("0.5")))
	feed.AssertExpectations(t)
}

func TestGetQuoteRejectsNonPositiveUsd(t *testing.T) {
	feed := &mPricefeed.Client{}
	u := New(&QuoteUseCaseCfg{Pricefeed: feed})

	_, err := u.GetQuote(bCtx.Background(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	_, err = u.GetQuote(bCtx.Background(), decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	feed.AssertNotCalled(t, "GetPrice", mock.Anything)
}

func TestGetQuotePropagatesFeedFailure(t *testing.T) {
	feed := &mPricefeed.Client{}
	feed.On("GetPrice", mock.Anything).Return(nil, domain.ErrPriceUnavailable).Once()

	u := New(&QuoteUseCaseCfg{Pricefeed: feed})
	_, err := u.GetQuote(bCtx.Background(), decimal.RequireFromString("10"))
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
}
