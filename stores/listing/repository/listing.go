package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/listing"
	"github.com/footcaster/goapi/domain/txledger"
	"github.com/footcaster/goapi/service/query"
)

type listingRepo struct {
	q        query.Mongo
	txLedger txledger.Repo
}

func NewListingRepo(q query.Mongo, txLedger txledger.Repo) listing.Repo {
	return &listingRepo{q, txLedger}
}

func (im *listingRepo) makeQuery(opts ...listing.FindAllOptions) (bson.M, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.Status != nil {
		query["status"] = *options.Status
	}

	if options.SellerFid != nil {
		query["sellerFid"] = *options.SellerFid
	}

	return query, nil
}

func (im *listingRepo) FindOne(c ctx.Ctx, id string) (*listing.Listing, error) {
	res := listing.Listing{}
	err := im.q.FindOne(c, domain.TableListings, bson.M{"id": id}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *listingRepo) FindAll(c ctx.Ctx, opts ...listing.FindAllOptions) ([]*listing.Listing, error) {
	q, err := im.makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("im.makeQuery failed")
		return nil, err
	}

	options, _ := listing.GetFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}
	sort := "-createdAt"
	if options.SortBy != nil {
		sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	res := []*listing.Listing{}
	if err := im.q.Search(c, domain.TableListings, offset, limit, sort, q, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *listingRepo) Create(c ctx.Ctx, l *listing.Listing) error {
	if err := im.q.Insert(c, domain.TableListings, l); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"listing": l,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

// CloseAndTransfer requires status active in the selector, so exactly one of
// any number of concurrent buyers can flip the listing to sold. Everyone
// else matches nothing and gets ErrEntityNotActive, never a partial apply.
func (im *listingRepo) CloseAndTransfer(c ctx.Ctx, id string, buyer domain.Fid) error {
	selector := bson.M{
		"id":     id,
		"status": listing.StatusActive,
	}
	update := bson.M{"$set": bson.M{
		"status":    listing.StatusSold,
		"buyerFid":  buyer,
		"updatedAt": time.Now(),
	}}

	err := im.q.CustomPatch(c, domain.TableListings, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrEntityNotActive
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"id":    id,
			"buyer": buyer,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *listingRepo) AtomicPurchase(c ctx.Ctx, txHash domain.TxHash, buyer domain.Fid, id string) error {
	return im.q.RunWithTransaction(c, func(sc ctx.Ctx) error {
		if err := im.txLedger.Mark(sc, txHash, buyer, "market/buy"); err != nil {
			return err
		}
		return im.CloseAndTransfer(sc, id, buyer)
	})
}

func (im *listingRepo) Cancel(c ctx.Ctx, id string, seller domain.Fid) error {
	selector := bson.M{
		"id":        id,
		"status":    listing.StatusActive,
		"sellerFid": seller,
	}
	update := bson.M{"$set": bson.M{
		"status":    listing.StatusCancelled,
		"updatedAt": time.Now(),
	}}

	err := im.q.CustomPatch(c, domain.TableListings, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrEntityNotActive
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}
