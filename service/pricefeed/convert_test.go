package pricefeed

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footcaster/goapi/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateAmount(t *testing.T) {
	cases := []struct {
		name  string
		usd   string
		price string
		want  string
	}{
		{"one dollar at one dollar", "1", "1", "1000000000000000000"},
		{"ten dollars at two dollars", "10", "2", "5000000000000000000"},
		{"sub-dollar price", "1", "0.5", "2000000000000000000"},
		{"micro price", "1", "0.000001", "1000000000000000000000000"},
		{"repeating decimal truncates", "1", "3", "333333333333333333"},
		{"fractional usd", "0.25", "0.125", "2000000000000000000"},
		{"zero usd", "0", "1.5", "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CalculateAmount(dec(c.usd), dec(c.price))
			require.NoError(t, err)

			want, ok := new(big.Int).SetString(c.want, 10)
			require.True(t, ok)
			assert.Equal(t, 0, got.Cmp(want), "got %s want %s", got, want)
		})
	}
}

func TestCalculateAmountRejectsBadInputs(t *testing.T) {
	_, err := CalculateAmount(dec("1"), dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidPriceData)

	_, err = CalculateAmount(dec("1"), dec("-0.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidPriceData)

	_, err = CalculateAmount(dec("-1"), dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidNumberFormat)
}

func TestCalculateAmountIsDeterministic(t *testing.T) {
	usd, price := dec("123.456789"), dec("0.0000420013")

	first, err := CalculateAmount(usd, price)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := CalculateAmount(usd, price)
		require.NoError(t, err)
		assert.Equal(t, 0, first.Cmp(again))
	}
}
