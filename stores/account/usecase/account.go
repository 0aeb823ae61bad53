package usecase

import (
	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/account"
)

type impl struct {
	repo account.Repo
}

func New(repo account.Repo) account.Usecase {
	return &impl{repo: repo}
}

func (im *impl) Get(c ctx.Ctx, fid domain.Fid) (*account.Account, error) {
	res, err := im.repo.Get(c, fid)
	if err != nil && err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err": err,
			"fid": fid,
		}).Error("repo.Get failed")
	}
	return res, err
}

func (im *impl) EnsureExists(c ctx.Ctx, fid domain.Fid, wallet domain.Address) (*account.Account, error) {
	acc, err := im.repo.Get(c, fid)
	if err == domain.ErrNotFound {
		acc = &account.Account{Fid: fid, Wallet: wallet.ToLower()}
		if err := im.repo.Create(c, acc); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"fid": fid,
			}).Error("repo.Create failed")
			return nil, err
		}
		return acc, nil
	} else if err != nil {
		return nil, err
	}

	if !wallet.IsEmpty() && !acc.Wallet.Equals(wallet) {
		lowered := wallet.ToLower()
		if err := im.repo.Update(c, fid, &account.Patchable{Wallet: &lowered}); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"fid": fid,
			}).Error("repo.Update failed")
			return nil, err
		}
		acc.Wallet = lowered
	}
	return acc, nil
}
