package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/keys"
	"github.com/cardbay/goapi/domain/vendors"
	"github.com/cardbay/goapi/service/cache"
	"github.com/cardbay/goapi/service/cache/provider/primitive"
)

type VendorUseCaseCfg struct {
	Repo vendor.Repo
}

type impl struct {
	repo      vendor.Repo
	rateCache cache.Service
}

// New creates vendor usecase
func New(cfg *VendorUseCaseCfg) vendor.Usecase {
	return &impl{
		repo: cfg.Repo,
		rateCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Minute,
			Pfx:   keys.PfxCommissionRate,
			Cache: primitive.NewPrimitive(keys.PfxCommissionRate, 8),
		}),
	}
}

func (im *impl) Upsert(c ctx.Ctx, userId domain.UserId, payload *vendor.UpsertPayload) (*vendor.Vendor, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"userId": userId,
	})

	now := time.Now()
	cur, err := im.repo.FindOne(c, userId)
	if err == domain.ErrNotFound {
		cur = &vendor.Vendor{
			UserId:              userId,
			CommissionRate:      domain.DefaultCommissionRate,
			TotalCommissionPaid: decimal.Zero,
			CreatedAt:           now,
		}
	} else if err != nil {
		return nil, err
	}

	cur.BusinessName = payload.BusinessName
	if payload.CommissionRate != nil {
		cur.CommissionRate = *payload.CommissionRate
	}
	cur.UpdatedAt = now

	if err := im.repo.Upsert(c, cur); err != nil {
		c.WithField("err", err).Error("repo.Upsert failed")
		return nil, err
	}

	if err := im.rateCache.Del(c, userId.ToLowerStr()); err != nil {
		c.WithField("err", err).Error("rateCache.Del failed")
	}

	return cur, nil
}

func (im *impl) Get(c ctx.Ctx, userId domain.UserId) (*vendor.Vendor, error) {
	return im.repo.FindOne(c, userId)
}

func (im *impl) ResolveCommissionRate(c ctx.Ctx, userId domain.UserId) (decimal.Decimal, error) {
	rate := &decimal.Decimal{}

	err := im.rateCache.GetByFunc(c, userId.ToLowerStr(), rate, func() (interface{}, error) {
		v, err := im.repo.FindOne(c, userId)
		if err == domain.ErrNotFound {
			r := domain.DefaultCommissionRate
			return &r, nil
		} else if err != nil {
			return nil, err
		}
		r := v.CommissionRate
		return &r, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("rateCache.GetByFunc failed")
		return decimal.Zero, err
	}

	return *rate, nil
}

func (im *impl) RecordSettlement(c ctx.Ctx, userId domain.UserId, commission decimal.Decimal) error {
	if err := im.repo.RecordSettlement(c, userId, commission); err != nil && err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"userId":     userId,
			"commission": commission,
			"err":        err,
		}).Error("repo.RecordSettlement failed")
		return err
	}
	return nil
}
