package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/vendors"
	"github.com/cardbay/goapi/service/query"

	"github.com/shopspring/decimal"
)

type impl struct {
	query query.Mongo
}

// New creates new vendor repo
func New(query query.Mongo) vendor.Repo {
	return &impl{query: query}
}

func (im *impl) Upsert(c ctx.Ctx, v *vendor.Vendor) error {
	v.UserId = v.UserId.ToLower()
	if err := im.query.Upsert(c, domain.TableVendors, bson.M{"userId": v.UserId}, v); err != nil {
		c.WithFields(log.Fields{
			"userId": v.UserId,
			"err":    err,
		}).Error("upsert vendor failed")
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, userId domain.UserId) (*vendor.Vendor, error) {
	v := &vendor.Vendor{}
	err := im.query.FindOne(c, domain.TableVendors, bson.M{"userId": userId.ToLower()}, v)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("find vendor failed")
		return nil, err
	}
	return v, nil
}

func (im *impl) RecordSettlement(c ctx.Ctx, userId domain.UserId, commission decimal.Decimal) error {
	selector := bson.M{"userId": userId.ToLower()}
	update := bson.M{
		"$inc": bson.M{
			"leads":               1,
			"totalCommissionPaid": commission,
		},
	}
	if err := im.query.CustomPatch(c, domain.TableVendors, selector, update, false); err != nil {
		c.WithFields(log.Fields{
			"userId":     userId,
			"commission": commission,
			"err":        err,
		}).Error("record settlement failed")
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
