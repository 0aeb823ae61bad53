package account

import (
	"time"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
)

// Account is a user keyed by platform fid. Wallet is empty until the user
// links one; a wallet-less user cannot be a payment counterparty.
type Account struct {
	Fid       domain.Fid     `json:"fid" bson:"fid"`
	Wallet    domain.Address `json:"wallet,omitempty" bson:"wallet,omitempty"`
	Alias     string         `json:"alias" bson:"alias"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt,omitempty"`
}

func (a *Account) HasWallet() bool {
	return !a.Wallet.IsEmpty()
}

type Patchable struct {
	Wallet *domain.Address `bson:"wallet,omitempty"`
	Alias  *string         `bson:"alias,omitempty"`
}

type Repo interface {
	Get(c ctx.Ctx, fid domain.Fid) (*Account, error)
	Create(c ctx.Ctx, a *Account) error
	Update(c ctx.Ctx, fid domain.Fid, patch *Patchable) error
}

type Usecase interface {
	Get(c ctx.Ctx, fid domain.Fid) (*Account, error)
	// EnsureExists creates the account on first sight and keeps the linked
	// wallet up to date.
	EnsureExists(c ctx.Ctx, fid domain.Fid, wallet domain.Address) (*Account, error)
}
