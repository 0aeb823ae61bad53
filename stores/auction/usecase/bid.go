package usecase

import (
	"math/big"
	"time"

	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/auction"
)

const bpsDenominator = 10000

// minIncrement is max(topBid * bps / 10000, 1), computed in integer smallest
// unit arithmetic
func minIncrement(topBid *big.Int, incrementBps int64) *big.Int {
	inc := new(big.Int).Mul(topBid, big.NewInt(incrementBps))
	inc.Quo(inc, big.NewInt(bpsDenominator))
	if inc.Cmp(domain.Big1) < 0 {
		return new(big.Int).Set(domain.Big1)
	}
	return inc
}

// validateBid applies the bid rules in order; the first failing check wins.
func validateBid(a *auction.Auction, bidder domain.Fid, amount *big.Int, incrementBps int64, now time.Time) error {
	if a.Status != auction.StatusActive || a.Ended(now) {
		return domain.ErrAuctionClosed
	}

	if a.SellerFid == bidder {
		return domain.ErrSelfBidForbidden
	}

	reserve, err := a.ReserveAmount()
	if err != nil {
		return err
	}
	if amount.Cmp(reserve) < 0 {
		return domain.ErrBelowReserve
	}

	if a.HasTopBid() {
		topBid, err := a.TopBidAmount()
		if err != nil {
			return err
		}
		floor := new(big.Int).Add(topBid, minIncrement(topBid, incrementBps))
		if amount.Cmp(floor) < 0 {
			return domain.ErrIncrementTooSmall
		}
	}

	// a bid at or above buy-now must go through the buy-now flow so the
	// on-chain payment is verified before transfer
	if a.HasBuyNow() {
		buyNow, err := a.BuyNowAmount()
		if err != nil {
			return err
		}
		if amount.Cmp(buyNow) >= 0 {
			return domain.ErrUseBuyNowFlow
		}
	}

	return nil
}

// nextEndsAt extends the deadline when the bid lands inside the anti-snipe
// window, giving other bidders a chance to respond.
func nextEndsAt(a *auction.Auction, window, extension time.Duration, now time.Time) (time.Time, bool) {
	if window <= 0 || extension <= 0 {
		return a.EndsAt, false
	}
	if a.EndsAt.Sub(now) > window {
		return a.EndsAt, false
	}
	return a.EndsAt.Add(extension), true
}
