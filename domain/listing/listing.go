package listing

import (
	"math/big"
	"time"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusCancelled Status = "cancelled"
)

// Listing is a fixed-price, non-competitive sale of one item.
type Listing struct {
	Id        string     `json:"id" bson:"id"`
	SellerFid domain.Fid `json:"sellerFid" bson:"sellerFid"`
	ItemId    string     `json:"itemId" bson:"itemId"`
	PriceWei  string     `json:"priceWei" bson:"priceWei"`
	Status    Status     `json:"status" bson:"status"`
	BuyerFid  domain.Fid `json:"buyerFid,omitempty" bson:"buyerFid,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) PriceAmount() (*big.Int, error) {
	return domain.ParseWei(l.PriceWei)
}

type findAllOptions struct {
	Status    *Status
	SellerFid *domain.Fid
	Offset    *int
	Limit     *int
	SortBy    *string
	SortDir   *domain.SortDir
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

type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Listing, error)
	Create(c ctx.Ctx, l *Listing) error
	// CloseAndTransfer transitions active -> sold with buyer as the new
	// owner. Exactly one concurrent caller succeeds; all others get
	// domain.ErrEntityNotActive.
	CloseAndTransfer(c ctx.Ctx, id string, buyer domain.Fid) error
	// AtomicPurchase marks the tx hash used and applies CloseAndTransfer
	// inside one store transaction.
	AtomicPurchase(c ctx.Ctx, txHash domain.TxHash, buyer domain.Fid, id string) error
	Cancel(c ctx.Ctx, id string, seller domain.Fid) error
}

type UseCase interface {
	Get(c ctx.Ctx, id string) (*Listing, error)
	GetActive(c ctx.Ctx, opts ...FindAllOptions) ([]*Listing, error)
	Create(c ctx.Ctx, seller domain.Fid, itemId, priceWei string) (*Listing, error)
	Buy(c ctx.Ctx, id string, buyer domain.Fid, buyerWallet domain.Address, txHash domain.TxHash) (*Listing, error)
	Cancel(c ctx.Ctx, id string, seller domain.Fid) error
}
