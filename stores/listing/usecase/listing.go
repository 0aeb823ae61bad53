package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/account"
	"github.com/footcaster/goapi/domain/listing"
	"github.com/footcaster/goapi/domain/txledger"
	"github.com/footcaster/goapi/service/verifier"
)

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	AccountRepo account.Repo
	TxLedger    txledger.Repo
	Verifier    verifier.Verifier

	// AtomicApply selects the single-transaction settlement path over the
	// legacy mark-then-mutate one.
	AtomicApply bool
}

type impl struct {
	listingRepo listing.Repo
	accountRepo account.Repo
	txLedger    txledger.Repo
	verifier    verifier.Verifier
	atomicApply bool
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		listingRepo: cfg.ListingRepo,
		accountRepo: cfg.AccountRepo,
		txLedger:    cfg.TxLedger,
		verifier:    cfg.Verifier,
		atomicApply: cfg.AtomicApply,
	}
}

func (im *impl) Get(c ctx.Ctx, id string) (*listing.Listing, error) {
	return im.listingRepo.FindOne(c, id)
}

func (im *impl) GetActive(c ctx.Ctx, opts ...listing.FindAllOptions) ([]*listing.Listing, error) {
	opts = append(opts, listing.WithStatus(listing.StatusActive))
	res, err := im.listingRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("listingRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Create(c ctx.Ctx, seller domain.Fid, itemId, priceWei string) (*listing.Listing, error) {
	price, err := domain.ParseWei(priceWei)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	now := time.Now()
	l := &listing.Listing{
		Id:        uuid.New().String(),
		SellerFid: seller,
		ItemId:    itemId,
		PriceWei:  price.String(),
		Status:    listing.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.listingRepo.Create(c, l); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"seller": seller,
			"itemId": itemId,
		}).Error("listingRepo.Create failed")
		return nil, err
	}
	return l, nil
}

// Buy settles a fixed-price listing against a verified on-chain transfer of
// exactly the listed amount.
func (im *impl) Buy(c ctx.Ctx, id string, buyer domain.Fid, buyerWallet domain.Address, txHash domain.TxHash) (*listing.Listing, error) {
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

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Status != listing.StatusActive {
		return nil, domain.ErrEntityNotActive
	}
	if l.SellerFid == buyer {
		return nil, domain.ErrSelfPurchaseForbidden
	}

	price, err := l.PriceAmount()
	if err != nil {
		return nil, err
	}

	sellerWallet, err := im.sellerWallet(c, l.SellerFid)
	if err != nil {
		return nil, err
	}
	if buyerWallet.IsEmpty() {
		return nil, domain.ErrBuyerWalletMissing
	}

	if err := im.verifyPayment(c, txHash, buyerWallet, sellerWallet, price); err != nil {
		return nil, err
	}

	if im.atomicApply {
		err = im.listingRepo.AtomicPurchase(c, txHash, buyer, id)
	} else {
		// legacy two-step mode. Safe only because CloseAndTransfer is
		// only-once per listing.
		if err = im.txLedger.Mark(c, txHash, buyer, "market/buy"); err == nil {
			err = im.listingRepo.CloseAndTransfer(c, id, buyer)
		}
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"buyer":  buyer,
			"txHash": txHash,
		}).Error("purchase apply failed")
		return nil, err
	}

	l.Status = listing.StatusSold
	l.BuyerFid = buyer
	return l, nil
}

func (im *impl) Cancel(c ctx.Ctx, id string, seller domain.Fid) error {
	if err := im.listingRepo.Cancel(c, id, seller); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"seller": seller,
		}).Error("listingRepo.Cancel failed")
		return err
	}
	return nil
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
