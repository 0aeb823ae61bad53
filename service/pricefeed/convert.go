package pricefeed

import (
	"math/big"

	"github.com/footcaster/goapi/domain"
	"github.com/shopspring/decimal"
)

// tokenDecimals is the payment token's decimal count; amounts are carried in
// the smallest unit (wei-style).
const tokenDecimals = 18

var weiPerToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(tokenDecimals), nil)

// CalculateAmount converts a USD value into an exact token amount in the
// smallest unit. Both operands are scaled to fixed-point integers before the
// division, so the result is deterministic across runs and platforms; no
// float64 is involved.
//
//	amountWei = (usd * 10^18) * 10^18 / (price * 10^18)
func CalculateAmount(usd, price decimal.Decimal) (*big.Int, error) {
	if price.Sign() <= 0 {
		return nil, domain.ErrInvalidPriceData
	}
	if usd.Sign() < 0 {
		return nil, domain.ErrInvalidNumberFormat
	}

	usdScaled := usd.Shift(tokenDecimals).BigInt()
	priceScaled := price.Shift(tokenDecimals).BigInt()
	if priceScaled.Sign() <= 0 {
		// price smaller than 10^-18 scales to zero
		return nil, domain.ErrInvalidPriceData
	}

	amount := new(big.Int).Mul(usdScaled, weiPerToken)
	return amount.Quo(amount, priceScaled), nil
}
