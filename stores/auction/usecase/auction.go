package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/account"
	"github.com/footcaster/goapi/domain/auction"
	"github.com/footcaster/goapi/domain/txledger"
	"github.com/footcaster/goapi/service/verifier"
)

type AuctionUseCaseCfg struct {
	AuctionRepo auction.Repo
	AccountRepo account.Repo
	TxLedger    txledger.Repo
	Verifier    verifier.Verifier

	// AtomicApply selects the single-transaction settlement path. The
	// two-step mark-then-mutate path is the legacy mode: it leaves a window
	// between the replay check and the mark, which is only harmless because
	// the auction mutations themselves are only-once.
	AtomicApply bool

	// MinIncrementBps is the minimum outbid increment in basis points of the
	// current top bid
	MinIncrementBps int64
	// AntiSnipeWindow and AntiSnipeExtension configure deadline extension
	// for late bids
	AntiSnipeWindow    time.Duration
	AntiSnipeExtension time.Duration
	// DefaultDuration is used when a new auction has no explicit duration
	DefaultDuration time.Duration
}

type impl struct {
	auctionRepo auction.Repo
	accountRepo account.Repo
	txLedger    txledger.Repo
	verifier    verifier.Verifier

	atomicApply        bool
	minIncrementBps    int64
	antiSnipeWindow    time.Duration
	antiSnipeExtension time.Duration
	defaultDuration    time.Duration
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	minIncrementBps := cfg.MinIncrementBps
	if minIncrementBps == 0 {
		minIncrementBps = 200
	}
	defaultDuration := cfg.DefaultDuration
	if defaultDuration == 0 {
		defaultDuration = 48 * time.Hour
	}
	// sniping protection stays on when the config omits it
	antiSnipeWindow := cfg.AntiSnipeWindow
	if antiSnipeWindow == 0 {
		antiSnipeWindow = 5 * time.Minute
	}
	antiSnipeExtension := cfg.AntiSnipeExtension
	if antiSnipeExtension == 0 {
		antiSnipeExtension = 5 * time.Minute
	}
	return &impl{
		auctionRepo:        cfg.AuctionRepo,
		accountRepo:        cfg.AccountRepo,
		txLedger:           cfg.TxLedger,
		verifier:           cfg.Verifier,
		atomicApply:        cfg.AtomicApply,
		minIncrementBps:    minIncrementBps,
		antiSnipeWindow:    antiSnipeWindow,
		antiSnipeExtension: antiSnipeExtension,
		defaultDuration:    defaultDuration,
	}
}

func (im *impl) Get(c ctx.Ctx, id string) (*auction.Auction, error) {
	a, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	return im.sweepIfEnded(c, a), nil
}

func (im *impl) GetActive(c ctx.Ctx, opts ...auction.FindAllOptions) ([]*auction.Auction, error) {
	opts = append(opts, auction.WithStatus(auction.StatusActive))
	all, err := im.auctionRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("auctionRepo.FindAll failed")
		return nil, err
	}

	now := time.Now()
	live := make([]*auction.Auction, 0, len(all))
	for _, a := range all {
		if a.Ended(now) {
			// lazy sweep, expired auctions leave the bidding phase on read
			if err := im.auctionRepo.MarkEnded(c, a.Id); err != nil {
				c.WithFields(log.Fields{
					"err": err,
					"id":  a.Id,
				}).Warn("auctionRepo.MarkEnded failed")
			}
			continue
		}
		live = append(live, a)
	}
	return live, nil
}

func (im *impl) Create(c ctx.Ctx, seller domain.Fid, itemId, reserveWei string, duration time.Duration, buyNowWei string) (*auction.Auction, error) {
	reserve, err := domain.ParseWei(reserveWei)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	if len(buyNowWei) > 0 {
		buyNow, err := domain.ParseWei(buyNowWei)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		if buyNow.Cmp(reserve) < 0 {
			return nil, domain.ErrBadParamInput
		}
	}

	if duration <= 0 {
		duration = im.defaultDuration
	}
	now := time.Now()
	a := &auction.Auction{
		Id:         uuid.New().String(),
		SellerFid:  seller,
		ItemId:     itemId,
		Status:     auction.StatusActive,
		ReserveWei: reserve.String(),
		BuyNowWei:  buyNowWei,
		EndsAt:     now.Add(duration),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := im.auctionRepo.Create(c, a); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"seller": seller,
			"itemId": itemId,
		}).Error("auctionRepo.Create failed")
		return nil, err
	}
	return a, nil
}

// PlaceBid validates against the latest read state and applies the top bid
// with a compare-and-set. A bidder who loses the race gets a rejection
// computed from the fresh state, never a silent overwrite.
func (im *impl) PlaceBid(c ctx.Ctx, id string, bidder domain.Fid, amountWei string) (*auction.PlaceBidResult, error) {
	amount, err := domain.ParseWei(amountWei)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}

	const attempts = 2
	for i := 0; i < attempts; i++ {
		a, err := im.auctionRepo.FindOne(c, id)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		if a.Status == auction.StatusActive && a.Ended(now) {
			if err := im.auctionRepo.MarkEnded(c, a.Id); err != nil {
				c.WithFields(log.Fields{
					"err": err,
					"id":  a.Id,
				}).Warn("auctionRepo.MarkEnded failed")
			}
			return nil, domain.ErrAuctionClosed
		}

		if err := validateBid(a, bidder, amount, im.minIncrementBps, now); err != nil {
			return nil, err
		}

		endsAt, extended := nextEndsAt(a, im.antiSnipeWindow, im.antiSnipeExtension, now)
		check := auction.PlaceBidCheck{
			PrevTopBidWei: a.TopBidWei,
			PrevEndsAt:    a.EndsAt,
		}
		err = im.auctionRepo.PlaceBid(c, id, bidder, amount.String(), endsAt, check)
		if err == domain.ErrConflict {
			// lost the race, re-read and re-validate
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"id":     id,
				"bidder": bidder,
			}).Error("auctionRepo.PlaceBid failed")
			return nil, err
		}

		a.TopBidderFid = bidder
		a.TopBidWei = amount.String()
		a.EndsAt = endsAt
		return &auction.PlaceBidResult{Auction: a, Extended: extended}, nil
	}

	return nil, domain.ErrConflict
}

// BuyNow settles an auction at its buy-now price against a verified
// on-chain transfer.
func (im *impl) BuyNow(c ctx.Ctx, id string, buyer domain.Fid, buyerWallet domain.Address, txHash domain.TxHash) (*auction.Auction, error) {
	if !txHash.IsValid() {
		return nil, domain.ErrInvalidTxHash
	}
	txHash = txHash.ToLower()

	// replay check first: a consumed hash is rejected before any chain call
	if used, err := im.txLedger.IsUsed(c, txHash); err != nil {
		return nil, err
	} else if used {
		return nil, domain.ErrTxReplay
	}

	a, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if a.Status != auction.StatusActive || a.Ended(time.Now()) {
		return nil, domain.ErrEntityNotActive
	}
	if !a.HasBuyNow() {
		return nil, domain.ErrBuyNowUnavailable
	}
	if a.SellerFid == buyer {
		return nil, domain.ErrSelfPurchaseForbidden
	}

	buyNow, err := a.BuyNowAmount()
	if err != nil {
		return nil, err
	}

	sellerWallet, err := im.sellerWallet(c, a.SellerFid)
	if err != nil {
		return nil, err
	}
	if buyerWallet.IsEmpty() {
		return nil, domain.ErrBuyerWalletMissing
	}

	if err := im.verifyPayment(c, txHash, buyerWallet, sellerWallet, buyNow); err != nil {
		return nil, err
	}

	if im.atomicApply {
		err = im.auctionRepo.AtomicBuyNow(c, txHash, buyer, id, a.BuyNowWei)
	} else {
		// legacy two-step: mark then mutate. The window between the replay
		// check above and this mark is tolerated because BuyNow itself is
		// only-once per auction.
		if err = im.txLedger.Mark(c, txHash, buyer, "auctions/buy-now"); err == nil {
			err = im.auctionRepo.BuyNow(c, id, buyer, a.BuyNowWei)
		}
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"buyer":  buyer,
			"txHash": txHash,
		}).Error("buy-now apply failed")
		return nil, err
	}

	a.Status = auction.StatusFinalized
	a.TopBidderFid = buyer
	a.TopBidWei = a.BuyNowWei
	return a, nil
}

// Finalize settles an ended auction: the winner pays the top bid and the
// item transfers.
func (im *impl) Finalize(c ctx.Ctx, id string, caller domain.Fid, callerWallet domain.Address, txHash domain.TxHash) (*auction.Auction, error) {
	if !txHash.IsValid() {
		return nil, domain.ErrInvalidTxHash
	}
	txHash = txHash.ToLower()

	if used, err := im.txLedger.IsUsed(c, txHash); err != nil {
		return nil, err
	} else if used {
		return nil, domain.ErrTxReplay
	}

	a, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	a = im.sweepIfEnded(c, a)

	if a.Status != auction.StatusAwaitingPayment {
		return nil, domain.ErrNotAwaitingPayment
	}
	if a.TopBidderFid != caller {
		return nil, domain.ErrNotWinner
	}
	if !a.HasTopBid() {
		return nil, domain.ErrNoWinningBid
	}

	topBid, err := a.TopBidAmount()
	if err != nil {
		return nil, err
	}

	sellerWallet, err := im.sellerWallet(c, a.SellerFid)
	if err != nil {
		return nil, err
	}
	if callerWallet.IsEmpty() {
		return nil, domain.ErrBuyerWalletMissing
	}

	if err := im.verifyPayment(c, txHash, callerWallet, sellerWallet, topBid); err != nil {
		return nil, err
	}

	if im.atomicApply {
		err = im.auctionRepo.AtomicFinalize(c, txHash, caller, id)
	} else {
		if err = im.txLedger.Mark(c, txHash, caller, "auctions/finalize"); err == nil {
			err = im.auctionRepo.Finalize(c, id, caller)
		}
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"caller": caller,
			"txHash": txHash,
		}).Error("finalize apply failed")
		return nil, err
	}

	a.Status = auction.StatusFinalized
	return a, nil
}

func (im *impl) sellerWallet(c ctx.Ctx, seller domain.Fid) (domain.Address, error) {
	acc, err := im.accountRepo.Get(c, seller)
	if err == domain.ErrNotFound {
		return "", domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"fid": seller,
		}).Error("accountRepo.Get failed")
		return "", err
	}
	if !acc.HasWallet() {
		return "", domain.ErrSellerWalletMissing
	}
	return acc.Wallet, nil
}

func (im *impl) verifyPayment(c ctx.Ctx, txHash domain.TxHash, from, to domain.Address, amount *big.Int) error {
	verification, err := im.verifier.VerifyExactTransfer(c, txHash, from, to, amount)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"txHash": txHash,
		}).Error("verifier.VerifyExactTransfer failed")
		return err
	}
	if !verification.Valid {
		c.WithFields(log.Fields{
			"txHash": txHash,
			"detail": verification.Detail,
		}).Info("payment verification rejected")
		return domain.ErrPaymentInvalid
	}
	return nil
}

// sweepIfEnded reflects the lazy close on reads: an expired active auction
// is swept and the fresh state returned.
func (im *impl) sweepIfEnded(c ctx.Ctx, a *auction.Auction) *auction.Auction {
	if a.Status != auction.StatusActive || !a.Ended(time.Now()) {
		return a
	}
	if err := im.auctionRepo.MarkEnded(c, a.Id); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  a.Id,
		}).Warn("auctionRepo.MarkEnded failed")
		return a
	}
	if fresh, err := im.auctionRepo.FindOne(c, a.Id); err == nil {
		return fresh
	}
	return a
}
