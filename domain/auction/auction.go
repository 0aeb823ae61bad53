package auction

import (
	"math/big"
	"time"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
)

type Status string

const (
	StatusActive          Status = "active"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusFinalized       Status = "finalized"
	StatusCancelled       Status = "cancelled"
)

// Auction is a time-boxed sale of one item via competitive bidding,
// optionally with a fixed buy-now price. Amounts are base-10 strings in the
// payment token's smallest unit.
type Auction struct {
	Id           string     `json:"id" bson:"id"`
	SellerFid    domain.Fid `json:"sellerFid" bson:"sellerFid"`
	ItemId       string     `json:"itemId" bson:"itemId"`
	Status       Status     `json:"status" bson:"status"`
	ReserveWei   string     `json:"reserveWei" bson:"reserveWei"`
	BuyNowWei    string     `json:"buyNowWei,omitempty" bson:"buyNowWei,omitempty"`
	TopBidderFid domain.Fid `json:"topBidderFid,omitempty" bson:"topBidderFid,omitempty"`
	TopBidWei    string     `json:"topBidWei,omitempty" bson:"topBidWei,omitempty"`
	EndsAt       time.Time  `json:"endsAt" bson:"endsAt"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (a *Auction) HasBuyNow() bool {
	return len(a.BuyNowWei) > 0
}

func (a *Auction) HasTopBid() bool {
	return len(a.TopBidWei) > 0
}

func (a *Auction) ReserveAmount() (*big.Int, error) {
	return domain.ParseWei(a.ReserveWei)
}

func (a *Auction) BuyNowAmount() (*big.Int, error) {
	return domain.ParseWei(a.BuyNowWei)
}

func (a *Auction) TopBidAmount() (*big.Int, error) {
	return domain.ParseWei(a.TopBidWei)
}

// Ended reports whether the auction deadline has passed. An ended auction may
// still carry StatusActive in store until it is swept to awaiting_payment.
func (a *Auction) Ended(now time.Time) bool {
	return !a.EndsAt.After(now)
}

type findAllOptions struct {
	Status     *Status
	SellerFid  *domain.Fid
	EndsBefore *time.Time
	Offset     *int
	Limit      *int
	SortBy     *string
	SortDir    *domain.SortDir
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithStatus(status Status) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithSellerFid(fid domain.Fid) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SellerFid = &fid
		return nil
	}
}

func WithEndsBefore(t time.Time) FindAllOptions {
	return func(options *findAllOptions) error {
		options.EndsBefore = &t
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sortBy string, sortDir domain.SortDir) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = &sortBy
		options.SortDir = &sortDir
		return nil
	}
}

// PlaceBidCheck is the state a bid mutation re-validates against at apply
// time. A concurrent winner changes the top bid and the compare-and-set
// fails with domain.ErrConflict.
type PlaceBidCheck struct {
	PrevTopBidWei string
	PrevEndsAt    time.Time
}

type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Auction, error)
	Create(c ctx.Ctx, a *Auction) error
	// PlaceBid applies a validated top-bid update. check carries the state the
	// bid was validated against; a lost race returns domain.ErrConflict.
	PlaceBid(c ctx.Ctx, id string, bidder domain.Fid, amountWei string, newEndsAt time.Time, check PlaceBidCheck) error
	// BuyNow transitions active -> finalized with the buyer as winner. Only
	// one caller can succeed; the rest get domain.ErrEntityNotActive.
	BuyNow(c ctx.Ctx, id string, buyer domain.Fid, amountWei string) error
	// Finalize transitions awaiting_payment -> finalized.
	Finalize(c ctx.Ctx, id string, winner domain.Fid) error
	// AtomicBuyNow marks the tx hash used and applies BuyNow inside one
	// store transaction.
	AtomicBuyNow(c ctx.Ctx, txHash domain.TxHash, buyer domain.Fid, id string, amountWei string) error
	// AtomicFinalize marks the tx hash used and applies Finalize inside one
	// store transaction.
	AtomicFinalize(c ctx.Ctx, txHash domain.TxHash, winner domain.Fid, id string) error
	// MarkEnded sweeps an expired active auction to awaiting_payment (with a
	// top bid) or cancelled (without).
	MarkEnded(c ctx.Ctx, id string) error
}

type PlaceBidResult struct {
	Auction  *Auction `json:"auction"`
	Extended bool     `json:"extended"`
}

type UseCase interface {
	Get(c ctx.Ctx, id string) (*Auction, error)
	GetActive(c ctx.Ctx, opts ...FindAllOptions) ([]*Auction, error)
	Create(c ctx.Ctx, seller domain.Fid, itemId, reserveWei string, duration time.Duration, buyNowWei string) (*Auction, error)
	PlaceBid(c ctx.Ctx, id string, bidder domain.Fid, amountWei string) (*PlaceBidResult, error)
	BuyNow(c ctx.Ctx, id string, buyer domain.Fid, buyerWallet domain.Address, txHash domain.TxHash) (*Auction, error)
	Finalize(c ctx.Ctx, id string, caller domain.Fid, callerWallet domain.Address, txHash domain.TxHash) (*Auction, error)
}
