package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/database/mongoclient"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/offer"
	"github.com/cardbay/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

// New creates new offer repo
func New(q query.Mongo) offer.Repo {
	return &impl{q: q}
}

func makeQuery(opts ...offer.FindAllOptionsFunc) (bson.M, error) {
	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	qry := bson.M{}

	if options.ListingId != nil {
		qry["listingId"] = *options.ListingId
	}

	if options.Bidder != nil {
		qry["bidder"] = *options.Bidder
	}

	if options.Status != nil {
		qry["status"] = *options.Status
	}

	if len(options.StatusIn) > 0 {
		qry["status"] = bson.M{"$in": options.StatusIn}
	}

	if options.NotId != nil {
		qry["id"] = bson.M{"$ne": *options.NotId}
	}

	return qry, nil
}

func (im *impl) Insert(c ctx.Ctx, o *offer.Offer) error {
	o.Bidder = o.Bidder.ToLower()
	if err := im.q.Insert(c, domain.TableOffers, o); err != nil {
		c.WithFields(log.Fields{
			"id":  o.Id,
			"err": err,
		}).Error("insert offer failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, id offer.Id) (*offer.Offer, error) {
	res := offer.Offer{}
	err := im.q.FindOne(c, domain.TableOffers, bson.M{"id": id}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	qry, err := makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeQuery")
		return nil, err
	}

	options, _ := offer.GetFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	// newest first unless the caller asked otherwise
	sort := "-createdAt"
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*offer.Offer{}
	if err := im.q.Search(c, domain.TableOffers, offset, limit, sort, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(c ctx.Ctx, opts ...offer.FindAllOptionsFunc) (int, error) {
	qry, err := makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableOffers, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *impl) Update(c ctx.Ctx, id offer.Id, patchable offer.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("make bsonM failed")
		return err
	}
	if err := im.q.Patch(c, domain.TableOffers, bson.M{"id": id}, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

func (im *impl) UpdateAll(c ctx.Ctx, patchable offer.Patchable, opts ...offer.FindAllOptionsFunc) (int, error) {
	qry, err := makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeQuery")
		return 0, err
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithField("err", err).Error("make bsonM failed")
		return 0, err
	}

	cnt, err := im.q.PatchAndCount(c, domain.TableOffers, qry, updater)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.PatchAndCount")
		return 0, err
	}
	return int(cnt), nil
}
