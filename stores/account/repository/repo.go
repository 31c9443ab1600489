package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/database/mongoclient"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
	"github.com/cardbay/goapi/service/cache"
	compoundcache "github.com/cardbay/goapi/service/cache/compoundcache"
	"github.com/cardbay/goapi/service/cache/provider/primitive"
	redisCache "github.com/cardbay/goapi/service/cache/provider/redis"
	"github.com/cardbay/goapi/service/query"
	"github.com/cardbay/goapi/service/redis"
)

type impl struct {
	query        query.Mongo
	accountCache cache.Service
}

// New creates new account repo
func New(query query.Mongo, redis redis.Service) account.Repo {
	layers := []cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Minute,
			Pfx:   "account",
			Cache: primitive.NewPrimitive("account", 64),
		}),
	}

	if redis != nil {
		layers = append(layers, cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   "account",
			Cache: redisCache.NewRedis(redis),
		}))
	}

	return &impl{
		query:        query,
		accountCache: compoundcache.NewCompoundCache(layers),
	}
}

func (im *impl) Insert(c ctx.Ctx, a *account.Account) error {
	a.UserId = a.UserId.ToLower()
	if err := im.query.Insert(c, domain.TableAccounts, a); err != nil {
		c.WithFields(log.Fields{
			"userId": a.UserId,
			"err":    err,
		}).Error("insert account failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, userId domain.UserId) (*account.Account, error) {
	res := &account.Account{}

	if err := im.accountCache.GetByFunc(c, userId.ToLowerStr(), res, func() (interface{}, error) {
		return im.findOne(c, userId)
	}); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":    err,
				"userId": userId,
			}).Error("accountCache.GetByFunc failed")
		}
		return nil, err
	}

	return res, nil
}

func (im *impl) findOne(c ctx.Ctx, userId domain.UserId) (*account.Account, error) {
	a := &account.Account{}
	err := im.query.FindOne(c, domain.TableAccounts, bson.M{"userId": userId.ToLower()}, a)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("find account failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) FindOneByEmail(c ctx.Ctx, email string) (*account.Account, error) {
	a := &account.Account{}
	err := im.query.FindOne(c, domain.TableAccounts, bson.M{"email": email}, a)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"email": email,
			"err":   err,
		}).Error("find account by email failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) Update(c ctx.Ctx, userId domain.UserId, updater *account.Updater) error {
	updaterBson, err := mongoclient.MakeBsonM(updater)
	if err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("make bsonM failed")
		return err
	}
	if err := im.query.Patch(c, domain.TableAccounts, bson.M{"userId": userId.ToLower()}, updaterBson); err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("patch account failed")
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		return err
	}
	if err := im.accountCache.Del(c, userId.ToLowerStr()); err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("accountCache.Del failed")
	}
	return nil
}
