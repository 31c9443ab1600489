package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/base/validator"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
	"github.com/cardbay/goapi/domain/file"
	"github.com/cardbay/goapi/domain/listing"
)

const (
	defaultAuctionDuration = 72 // hours
	maxSearchLimit         = int32(100)
)

type ListingUseCaseCfg struct {
	Repo      listing.Repo
	AccountUC account.Usecase
	FileUC    file.Usecase
}

type impl struct {
	repo    listing.Repo
	account account.Usecase
	file    file.Usecase
}

// New creates listing usecase
func New(cfg *ListingUseCaseCfg) listing.Usecase {
	return &impl{
		repo:    cfg.Repo,
		account: cfg.AccountUC,
		file:    cfg.FileUC,
	}
}

func (im *impl) Create(c ctx.Ctx, seller domain.UserId, payload *listing.CreatePayload) (*listing.Listing, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"seller": seller,
	})

	if err := validateCard(&payload.Card); err != nil {
		return nil, err
	}

	now := time.Now()

	l := &listing.Listing{
		Id:          listing.Id(uuid.NewString()),
		Seller:      seller,
		Card:        payload.Card,
		Description: payload.Description,
		Status:      listing.StatusActive,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if payload.IsRFQ {
		if payload.StartingPrice != nil || payload.AuctionDuration != nil || payload.AuctionEndTime != nil {
			return nil, fmt.Errorf("%w: auction fields set on request-for-quote listing", domain.ErrBadParamInput)
		}
		if payload.MinPrice == nil || !payload.MinPrice.IsPositive() {
			return nil, fmt.Errorf("%w: minPrice must be positive", domain.ErrBadParamInput)
		}
		l.RFQ = &listing.RFQ{MinPrice: *payload.MinPrice}
	} else {
		if payload.MinPrice != nil {
			return nil, fmt.Errorf("%w: minPrice set on auction listing", domain.ErrBadParamInput)
		}
		if payload.StartingPrice == nil || !payload.StartingPrice.IsPositive() {
			return nil, fmt.Errorf("%w: startingPrice must be positive", domain.ErrBadParamInput)
		}
		endTime, err := resolveEndTime(now, payload)
		if err != nil {
			return nil, err
		}
		l.Auction = &listing.Auction{
			StartingPrice: *payload.StartingPrice,
			EndTime:       endTime,
		}
	}

	if err := im.uploadImages(c, l, payload); err != nil {
		return nil, err
	}

	if err := im.repo.Insert(c, l); err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		return nil, err
	}

	return l, nil
}

func validateCard(card *listing.Card) error {
	if card.Name == "" {
		return fmt.Errorf("%w: card name is required", domain.ErrBadParamInput)
	}
	if card.IsGraded {
		if card.Grade == nil {
			return fmt.Errorf("%w: graded card requires a grade", domain.ErrBadParamInput)
		}
		if !validator.IsValidGrade(*card.Grade) {
			return fmt.Errorf("%w: grade must be between 1 and 10", domain.ErrBadParamInput)
		}
		if card.GradingCompany == nil || *card.GradingCompany == "" {
			return fmt.Errorf("%w: graded card requires a grading company", domain.ErrBadParamInput)
		}
	} else if card.Grade != nil || card.GradingCompany != nil {
		return fmt.Errorf("%w: ungraded card cannot carry grading fields", domain.ErrBadParamInput)
	}
	return nil
}

func resolveEndTime(now time.Time, payload *listing.CreatePayload) (time.Time, error) {
	if payload.AuctionEndTime != nil && payload.AuctionDuration != nil {
		return time.Time{}, fmt.Errorf("%w: set either auctionEndTime or auctionDuration, not both", domain.ErrBadParamInput)
	}
	if payload.AuctionEndTime != nil {
		if !payload.AuctionEndTime.After(now) {
			return time.Time{}, fmt.Errorf("%w: auctionEndTime must be in the future", domain.ErrBadParamInput)
		}
		return *payload.AuctionEndTime, nil
	}
	duration := defaultAuctionDuration
	if payload.AuctionDuration != nil {
		if *payload.AuctionDuration <= 0 {
			return time.Time{}, fmt.Errorf("%w: auctionDuration must be positive", domain.ErrBadParamInput)
		}
		duration = *payload.AuctionDuration
	}
	return now.Add(time.Duration(duration) * time.Hour), nil
}

func (im *impl) uploadImages(c ctx.Ctx, l *listing.Listing, payload *listing.CreatePayload) error {
	if payload.FrontImage != "" {
		url, err := im.file.UploadImage(c, payload.FrontImage, fmt.Sprintf("listings/%s/front", l.Id))
		if err != nil {
			c.WithField("err", err).Error("file.UploadImage failed")
			return err
		}
		l.Card.FrontImageUrl = url
	}
	if payload.BackImage != "" {
		url, err := im.file.UploadImage(c, payload.BackImage, fmt.Sprintf("listings/%s/back", l.Id))
		if err != nil {
			c.WithField("err", err).Error("file.UploadImage failed")
			return err
		}
		l.Card.BackImageUrl = url
	}
	return nil
}

func (im *impl) Search(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (*listing.SearchResult, error) {
	options, err := listing.GetFindAllOptions(opts...)
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
	opts = append(opts, listing.WithPagination(offset, limit))

	listings, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}

	total, err := im.repo.Count(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.Count failed")
		return nil, err
	}

	withSellers, err := im.projectSellers(c, listings)
	if err != nil {
		return nil, err
	}

	return &listing.SearchResult{
		Listings: withSellers,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}, nil
}

// projectSellers attaches public seller profiles in one batched lookup.
func (im *impl) projectSellers(c ctx.Ctx, listings []*listing.Listing) ([]*listing.ListingWithSeller, error) {
	sellerIds := make([]domain.UserId, 0, len(listings))
	seen := map[domain.UserId]bool{}
	for _, l := range listings {
		id := l.Seller.ToLower()
		if !seen[id] {
			seen[id] = true
			sellerIds = append(sellerIds, id)
		}
	}

	profiles, err := im.account.GetSimpleBatch(c, sellerIds)
	if err != nil {
		c.WithField("err", err).Error("account.GetSimpleBatch failed")
		return nil, err
	}

	res := make([]*listing.ListingWithSeller, len(listings))
	for i, l := range listings {
		res[i] = &listing.ListingWithSeller{
			Listing: *l,
			Seller:  profiles[l.Seller.ToLower()],
		}
	}
	return res, nil
}

func (im *impl) Get(c ctx.Ctx, id listing.Id) (*listing.ListingWithSeller, error) {
	l, err := im.repo.FindOne(c, id)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"id":  id,
				"err": err,
			}).Error("repo.FindOne failed")
		}
		return nil, err
	}

	seller, err := im.account.GetSimple(c, l.Seller)
	if err != nil && err != domain.ErrNotFound {
		c.WithField("err", err).Error("account.GetSimple failed")
		return nil, err
	}

	return &listing.ListingWithSeller{Listing: *l, Seller: seller}, nil
}

func (im *impl) Update(c ctx.Ctx, id listing.Id, requester *domain.Identity, payload *listing.UpdatePayload) (*listing.Listing, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"id":        id,
		"requester": requester.UserId,
	})

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	if !l.Seller.Equals(requester.UserId) && !requester.IsAdmin {
		return nil, fmt.Errorf("%w: only the seller may update a listing", domain.ErrForbidden)
	}

	now := time.Now()
	patch := listing.Patchable{UpdatedAt: &now}

	if payload.Status != nil {
		if !payload.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrBadParamInput, *payload.Status)
		}
		if !l.Status.CanTransitionTo(*payload.Status) {
			return nil, fmt.Errorf("%w: cannot move listing from %s to %s", domain.ErrInvalidState, l.Status, *payload.Status)
		}
		patch.Status = payload.Status
	}

	if payload.Price != nil {
		if l.Status.IsTerminal() {
			return nil, domain.ErrListingNotActive
		}
		if !payload.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", domain.ErrBadParamInput)
		}
		if l.SaleMode() == listing.SaleModeAuction {
			if l.HighestBid != nil {
				return nil, fmt.Errorf("%w: cannot reprice an auction with bids", domain.ErrInvalidState)
			}
			patch.StartingPrice = payload.Price
		} else {
			patch.MinPrice = payload.Price
		}
	}

	if payload.EndTime != nil {
		if l.SaleMode() != listing.SaleModeAuction {
			return nil, fmt.Errorf("%w: endTime only applies to auctions", domain.ErrBadParamInput)
		}
		if !payload.EndTime.After(now) {
			return nil, fmt.Errorf("%w: endTime must be in the future", domain.ErrBadParamInput)
		}
		patch.EndTime = payload.EndTime
	}

	if err := im.repo.Update(c, id, l.Version, patch); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return nil, err
	}

	return im.repo.FindOne(c, id)
}

func (im *impl) Cancel(c ctx.Ctx, id listing.Id, requester domain.UserId) error {
	c = ctx.WithValues(c, map[string]interface{}{
		"id":        id,
		"requester": requester,
	})

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}

	if !l.Seller.Equals(requester) {
		return fmt.Errorf("%w: only the seller may cancel a listing", domain.ErrForbidden)
	}

	if l.Status.IsTerminal() {
		return fmt.Errorf("%w: listing is already %s", domain.ErrInvalidState, l.Status)
	}

	now := time.Now()
	cancelled := listing.StatusCancelled
	patch := listing.Patchable{
		Status:    &cancelled,
		UpdatedAt: &now,
	}
	if err := im.repo.Update(c, id, l.Version, patch); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return err
	}
	return nil
}

func (im *impl) IncreaseViewCount(c ctx.Ctx, id listing.Id) (int32, error) {
	if _, err := im.repo.FindOne(c, id); err != nil {
		return 0, err
	}
	return im.repo.IncreaseViewCount(c, id)
}
