package repository

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/account"
	"github.com/footcaster/goapi/service/cache"
	"github.com/footcaster/goapi/service/cache/provider"
	"github.com/footcaster/goapi/service/cache/provider/compound"
	"github.com/footcaster/goapi/service/cache/provider/primitive"
	redisCache "github.com/footcaster/goapi/service/cache/provider/redis"
	"github.com/footcaster/goapi/service/query"
	"github.com/footcaster/goapi/service/redis"
)

type accountRepo struct {
	q            query.Mongo
	accountCache cache.Service
}

// New creates new account repo. redis is optional, accounts are still cached
// in-process without it.
func New(q query.Mongo, redis redis.Service) account.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("account", 128),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &accountRepo{
		q: q,
		accountCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   "account",
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func cacheKey(fid domain.Fid) string {
	return strconv.FormatInt(int64(fid), 10)
}

func (im *accountRepo) Get(c ctx.Ctx, fid domain.Fid) (*account.Account, error) {
	res := &account.Account{}

	if err := im.accountCache.GetByFunc(c, cacheKey(fid), res, func() (interface{}, error) {
		return im.get(c, fid)
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (im *accountRepo) get(c ctx.Ctx, fid domain.Fid) (*account.Account, error) {
	res := account.Account{}
	err := im.q.FindOne(c, domain.TableAccounts, bson.M{"fid": fid}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"fid": fid,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *accountRepo) Create(c ctx.Ctx, a *account.Account) error {
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	if err := im.q.Insert(c, domain.TableAccounts, a); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"fid": a.Fid,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *accountRepo) Update(c ctx.Ctx, fid domain.Fid, patch *account.Patchable) error {
	update := bson.M{"$set": patch}
	update["$currentDate"] = bson.M{"updatedAt": true}
	err := im.q.CustomPatch(c, domain.TableAccounts, bson.M{"fid": fid}, update, false)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"fid": fid,
		}).Error("failed to q.CustomPatch")
		return err
	}
	if err := im.accountCache.Del(c, cacheKey(fid)); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"fid": fid,
		}).Error("failed to accountCache.Del")
	}
	return nil
}
