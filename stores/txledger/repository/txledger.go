package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/txledger"
	"github.com/footcaster/goapi/service/query"
)

// txUsageRepo relies on a unique index on txHash. The duplicate-key error on
// insert is what turns Mark into an at-most-once gate.
type txUsageRepo struct {
	q query.Mongo
}

func NewTxUsageRepo(q query.Mongo) txledger.Repo {
	return &txUsageRepo{q}
}

func (im *txUsageRepo) IsUsed(c ctx.Ctx, hash domain.TxHash) (bool, error) {
	usage := txledger.Usage{}
	err := im.q.FindOne(c, domain.TableTxUsages, bson.M{"txHash": hash.ToLower()}, &usage)
	if err == query.ErrNotFound {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"txHash": hash,
		}).Error("failed to q.FindOne")
		return false, err
	}
	return true, nil
}

func (im *txUsageRepo) Mark(c ctx.Ctx, hash domain.TxHash, usedBy domain.Fid, context string) error {
	usage := &txledger.Usage{
		TxHash:    hash.ToLower(),
		UsedBy:    usedBy,
		Context:   context,
		CreatedAt: time.Now(),
	}
	err := im.q.Insert(c, domain.TableTxUsages, usage)
	if err == query.ErrDuplicateKey {
		return domain.ErrTxReplay
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"txHash": hash,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}
