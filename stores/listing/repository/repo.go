package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/database/mongoclient"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/listing"
	"github.com/cardbay/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

// New creates new listing repo
func New(q query.Mongo) listing.Repo {
	return &impl{q: q}
}

func (im *impl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	qry := bson.M{}

	if options.Seller != nil {
		qry["seller"] = *options.Seller
	}

	if options.Status != nil {
		qry["status"] = *options.Status
	}

	if options.SaleMode != nil {
		// the sale mode is a tagged variant: exactly one of the two
		// sub-documents exists
		if *options.SaleMode == listing.SaleModeAuction {
			qry["auction"] = bson.M{"$exists": true}
		} else {
			qry["rfq"] = bson.M{"$exists": true}
		}
	}

	return qry, nil
}

func makeSort(opts ...listing.FindAllOptionsFunc) (string, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return "", err
	}
	if options.SortBy == nil {
		// newest first unless the caller asked otherwise
		return "-createdAt", nil
	}
	if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
		return fmt.Sprintf("-%s", *options.SortBy), nil
	}
	return *options.SortBy, nil
}

func (im *impl) Insert(c ctx.Ctx, l *listing.Listing) error {
	l.Seller = l.Seller.ToLower()
	if err := im.q.Insert(c, domain.TableListings, l); err != nil {
		c.WithFields(log.Fields{
			"id":  l.Id,
			"err": err,
		}).Error("insert listing failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	res := listing.Listing{}
	err := im.q.FindOne(c, domain.TableListings, bson.M{"id": id}, &res)
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

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("im.makeQuery")
		return nil, err
	}

	sort, err := makeSort(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeSort")
		return nil, err
	}

	options, _ := listing.GetFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*listing.Listing{}
	if err := im.q.Search(c, domain.TableListings, offset, limit, sort, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableListings, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *impl) Update(c ctx.Ctx, id listing.Id, version int64, patchable listing.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("make bsonM failed")
		return err
	}

	// match on the version the caller read. A concurrent writer bumps it
	// first and this patch then matches nothing.
	selector := bson.M{"id": id, "version": version}
	update := bson.M{
		"$set": updater,
		"$inc": bson.M{"version": 1},
	}
	if err := im.q.CustomPatch(c, domain.TableListings, selector, update, false); err != nil {
		if err == query.ErrNotFound {
			// either the listing is gone or someone else won the race
			if _, err := im.FindOne(c, id); err == domain.ErrNotFound {
				return domain.ErrNotFound
			} else if err != nil {
				return err
			}
			return domain.ErrConflict
		}
		c.WithFields(log.Fields{
			"id":      id,
			"version": version,
			"err":     err,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *impl) IncreaseViewCount(c ctx.Ctx, id listing.Id) (int32, error) {
	res := listing.Listing{}
	if err := im.q.Increment(c, domain.TableListings, bson.M{"id": id}, &res, "viewCount", int32(1)); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("failed to q.Increment")
		return 0, err
	}
	return res.ViewCount, nil
}
