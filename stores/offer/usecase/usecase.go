package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/listing"
	"github.com/cardbay/goapi/domain/offer"
	"github.com/cardbay/goapi/domain/vendors"
	"github.com/cardbay/goapi/service/query"
)

const maxSearchLimit = int32(100)

type OfferUseCaseCfg struct {
	Repo        offer.Repo
	ListingRepo listing.Repo
	VendorUC    vendor.Usecase
	Query       query.Mongo
}

type impl struct {
	repo        offer.Repo
	listingRepo listing.Repo
	vendor      vendor.Usecase
	q           query.Mongo
}

// New creates offer usecase
func New(cfg *OfferUseCaseCfg) offer.Usecase {
	return &impl{
		repo:        cfg.Repo,
		listingRepo: cfg.ListingRepo,
		vendor:      cfg.VendorUC,
		q:           cfg.Query,
	}
}

func (im *impl) Submit(c ctx.Ctx, bidder domain.UserId, payload *offer.SubmitPayload) (*offer.Offer, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"bidder":    bidder,
		"listingId": payload.ListingId,
	})

	if !payload.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrBadParamInput)
	}

	rate, err := im.vendor.ResolveCommissionRate(c, bidder)
	if err != nil {
		c.WithField("err", err).Error("vendor.ResolveCommissionRate failed")
		return nil, err
	}

	now := time.Now()
	o := &offer.Offer{
		Id:               offer.Id(uuid.NewString()),
		ListingId:        payload.ListingId,
		Bidder:           bidder,
		Amount:           payload.Amount,
		Message:          payload.Message,
		Status:           offer.StatusPending,
		CommissionAmount: payload.Amount.Mul(rate),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// the listing read, floor check and aggregate update must see a single
	// consistent snapshot, so the whole sequence runs in one transaction
	err = im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		l, err := im.listingRepo.FindOne(c, payload.ListingId)
		if err != nil {
			return err
		}

		if err := validateBid(l, bidder, o, now); err != nil {
			return err
		}

		if cnt, err := im.repo.Count(c,
			offer.WithListingId(l.Id),
			offer.WithBidder(bidder),
			offer.WithStatusIn(offer.StatusPending, offer.StatusAccepted),
		); err != nil {
			return err
		} else if cnt > 0 {
			return domain.ErrDuplicatePendingBid
		}

		if err := im.repo.Insert(c, o); err != nil {
			return err
		}

		totalOffers := l.TotalOffers + 1
		patch := listing.Patchable{
			TotalOffers: &totalOffers,
			UpdatedAt:   &now,
		}
		if l.SaleMode() == listing.SaleModeAuction {
			// the floor check already proved this amount leads, so the
			// snapshot overwrite is unconditional
			patch.HighestBid = &listing.HighestBid{
				Amount: o.Amount,
				Bidder: o.Bidder,
				At:     now,
			}
		}
		return im.listingRepo.Update(c, l.Id, l.Version, patch)
	})
	if err != nil {
		c.WithField("err", err).Error("submit offer failed")
		return nil, err
	}

	return o, nil
}

func validateBid(l *listing.Listing, bidder domain.UserId, o *offer.Offer, now time.Time) error {
	if l.Status != listing.StatusActive {
		return domain.ErrListingNotActive
	}

	if l.Seller.Equals(bidder) {
		return fmt.Errorf("%w: seller cannot bid on own listing", domain.ErrForbidden)
	}

	switch l.SaleMode() {
	case listing.SaleModeAuction:
		if now.After(l.Auction.EndTime) {
			return domain.ErrAuctionClosed
		}
		if !o.Amount.GreaterThan(l.Floor()) {
			return domain.ErrBidBelowFloor
		}
	case listing.SaleModeRFQ:
		if o.Amount.LessThan(l.RFQ.MinPrice) {
			return domain.ErrBidBelowMinPrice
		}
	}
	return nil
}

func (im *impl) Search(c ctx.Ctx, opts ...offer.FindAllOptionsFunc) (*offer.SearchResult, error) {
	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset, limit := int32(0), maxSearchLimit
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil && *options.Limit > 0 && *options.Limit < maxSearchLimit {
		limit = *options.Limit
	}
	opts = append(opts, offer.WithPagination(offset, limit))

	offers, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}

	total, err := im.repo.Count(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.Count failed")
		return nil, err
	}

	return &offer.SearchResult{
		Offers: offers,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}

func (im *impl) Get(c ctx.Ctx, id offer.Id) (*offer.Offer, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) Accept(c ctx.Ctx, id offer.Id, requester domain.UserId) (*offer.Offer, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"offerId":   id,
		"requester": requester,
	})

	var accepted *offer.Offer

	// accepted offer, rejected siblings and the sold listing must land
	// together, otherwise a crash leaves pending offers against a sold
	// listing
	err := im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		o, err := im.repo.FindOne(c, id)
		if err != nil {
			return err
		}

		l, err := im.listingRepo.FindOne(c, o.ListingId)
		if err != nil {
			return err
		}

		if !l.Seller.Equals(requester) {
			return fmt.Errorf("%w: only the seller may accept an offer", domain.ErrForbidden)
		}

		if o.Status.IsTerminal() {
			return fmt.Errorf("%w: offer is already %s", domain.ErrInvalidState, o.Status)
		}

		if l.Status != listing.StatusActive {
			return domain.ErrListingNotActive
		}

		if l.SaleMode() == listing.SaleModeAuction && !time.Now().After(l.Auction.EndTime) {
			return domain.ErrAuctionStillOpen
		}

		now := time.Now()

		acceptedStatus := offer.StatusAccepted
		if err := im.repo.Update(c, o.Id, offer.Patchable{
			Status:    &acceptedStatus,
			UpdatedAt: &now,
		}); err != nil {
			return err
		}

		rejectedStatus := offer.StatusRejected
		if cnt, err := im.repo.UpdateAll(c, offer.Patchable{
			Status:    &rejectedStatus,
			UpdatedAt: &now,
		},
			offer.WithListingId(l.Id),
			offer.WithStatus(offer.StatusPending),
			offer.WithNotId(o.Id),
		); err != nil {
			return err
		} else if cnt > 0 {
			c.WithFields(log.Fields{
				"listingId": l.Id,
				"rejected":  cnt,
			}).Info("rejected sibling offers")
		}

		sold := listing.StatusSold
		if err := im.listingRepo.Update(c, l.Id, l.Version, listing.Patchable{
			Status: &sold,
			HighestBid: &listing.HighestBid{
				Amount: o.Amount,
				Bidder: o.Bidder,
				At:     now,
			},
			UpdatedAt: &now,
		}); err != nil {
			return err
		}

		o.Status = offer.StatusAccepted
		o.UpdatedAt = now
		accepted = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return accepted, nil
}

func (im *impl) Reject(c ctx.Ctx, id offer.Id, requester domain.UserId) (*offer.Offer, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"offerId":   id,
		"requester": requester,
	})

	o, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	l, err := im.listingRepo.FindOne(c, o.ListingId)
	if err != nil {
		return nil, err
	}

	if !l.Seller.Equals(requester) {
		return nil, fmt.Errorf("%w: only the seller may reject an offer", domain.ErrForbidden)
	}

	if o.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: offer is already %s", domain.ErrInvalidState, o.Status)
	}

	now := time.Now()
	rejected := offer.StatusRejected
	if err := im.repo.Update(c, o.Id, offer.Patchable{
		Status:    &rejected,
		UpdatedAt: &now,
	}); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return nil, err
	}

	o.Status = rejected
	o.UpdatedAt = now
	return o, nil
}
