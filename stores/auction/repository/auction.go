package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/auction"
	"github.com/footcaster/goapi/domain/txledger"
	"github.com/footcaster/goapi/service/query"
)

type auctionRepo struct {
	q        query.Mongo
	txLedger txledger.Repo
}

func NewAuctionRepo(q query.Mongo, txLedger txledger.Repo) auction.Repo {
	return &auctionRepo{q, txLedger}
}

func (im *auctionRepo) makeQuery(opts ...auction.FindAllOptions) (bson.M, error) {
	options, err := auction.GetFindAllOptions(opts...)
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

	if options.EndsBefore != nil {
		query["endsAt"] = bson.M{"$lt": *options.EndsBefore}
	}

	return query, nil
}

func (im *auctionRepo) FindOne(c ctx.Ctx, id string) (*auction.Auction, error) {
	res := auction.Auction{}
	err := im.q.FindOne(c, domain.TableAuctions, bson.M{"id": id}, &res)
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

func (im *auctionRepo) FindAll(c ctx.Ctx, opts ...auction.FindAllOptions) ([]*auction.Auction, error) {
	q, err := im.makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("im.makeQuery failed")
		return nil, err
	}

	options, _ := auction.GetFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}
	sort := "endsAt"
	if options.SortBy != nil {
		sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	res := []*auction.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, offset, limit, sort, q, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *auctionRepo) Create(c ctx.Ctx, a *auction.Auction) error {
	if err := im.q.Insert(c, domain.TableAuctions, a); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"auction": a,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

// PlaceBid is a compare-and-set against the state the bid was validated on.
// The selector pins status, previous top bid and previous deadline; a
// concurrent winner changes one of them and the loser gets ErrConflict so
// the caller can re-read and re-validate.
func (im *auctionRepo) PlaceBid(c ctx.Ctx, id string, bidder domain.Fid, amountWei string, newEndsAt time.Time, check auction.PlaceBidCheck) error {
	selector := bson.M{
		"id":     id,
		"status": auction.StatusActive,
		"endsAt": check.PrevEndsAt,
	}
	if len(check.PrevTopBidWei) > 0 {
		selector["topBidWei"] = check.PrevTopBidWei
	} else {
		selector["topBidWei"] = bson.M{"$exists": false}
	}

	update := bson.M{"$set": bson.M{
		"topBidderFid": bidder,
		"topBidWei":    amountWei,
		"endsAt":       newEndsAt,
		"updatedAt":    time.Now(),
	}}

	err := im.q.CustomPatch(c, domain.TableAuctions, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"bidder": bidder,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

// BuyNow lets exactly one buyer win: the selector requires status active, so
// a second concurrent caller matches nothing and gets ErrEntityNotActive.
func (im *auctionRepo) BuyNow(c ctx.Ctx, id string, buyer domain.Fid, amountWei string) error {
	selector := bson.M{
		"id":     id,
		"status": auction.StatusActive,
	}
	update := bson.M{"$set": bson.M{
		"status":       auction.StatusFinalized,
		"topBidderFid": buyer,
		"topBidWei":    amountWei,
		"updatedAt":    time.Now(),
	}}

	err := im.q.CustomPatch(c, domain.TableAuctions, selector, update, false)
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

func (im *auctionRepo) Finalize(c ctx.Ctx, id string, winner domain.Fid) error {
	selector := bson.M{
		"id":           id,
		"status":       auction.StatusAwaitingPayment,
		"topBidderFid": winner,
	}
	update := bson.M{"$set": bson.M{
		"status":    auction.StatusFinalized,
		"updatedAt": time.Now(),
	}}

	err := im.q.CustomPatch(c, domain.TableAuctions, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrEntityNotActive
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"winner": winner,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *auctionRepo) AtomicBuyNow(c ctx.Ctx, txHash domain.TxHash, buyer domain.Fid, id string, amountWei string) error {
	return im.q.RunWithTransaction(c, func(sc ctx.Ctx) error {
		if err := im.txLedger.Mark(sc, txHash, buyer, "auctions/buy-now"); err != nil {
			return err
		}
		return im.BuyNow(sc, id, buyer, amountWei)
	})
}

func (im *auctionRepo) AtomicFinalize(c ctx.Ctx, txHash domain.TxHash, winner domain.Fid, id string) error {
	return im.q.RunWithTransaction(c, func(sc ctx.Ctx) error {
		if err := im.txLedger.Mark(sc, txHash, winner, "auctions/finalize"); err != nil {
			return err
		}
		return im.Finalize(sc, id, winner)
	})
}

// MarkEnded sweeps an expired active auction out of the bidding phase. With
// a top bid it moves to awaiting_payment for the winner to settle, without
// one it is cancelled.
func (im *auctionRepo) MarkEnded(c ctx.Ctx, id string) error {
	now := time.Now()

	withBid := bson.M{
		"id":        id,
		"status":    auction.StatusActive,
		"endsAt":    bson.M{"$lte": now},
		"topBidWei": bson.M{"$exists": true},
	}
	err := im.q.CustomPatch(c, domain.TableAuctions, withBid, bson.M{"$set": bson.M{
		"status":    auction.StatusAwaitingPayment,
		"updatedAt": now,
	}}, false)
	if err == nil {
		return nil
	} else if err != query.ErrNotFound {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.CustomPatch")
		return err
	}

	withoutBid := bson.M{
		"id":        id,
		"status":    auction.StatusActive,
		"endsAt":    bson.M{"$lte": now},
		"topBidWei": bson.M{"$exists": false},
	}
	err = im.q.CustomPatch(c, domain.TableAuctions, withoutBid, bson.M{"$set": bson.M{
		"status":    auction.StatusCancelled,
		"updatedAt": now,
	}}, false)
	if err == query.ErrNotFound {
		// already swept or still live, nothing to do
		return nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}
