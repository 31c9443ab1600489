package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/listing"
	mListing "github.com/cardbay/goapi/domain/listing/mocks"
	"github.com/cardbay/goapi/domain/offer"
	mOffer "github.com/cardbay/goapi/domain/offer/mocks"
	mVendor "github.com/cardbay/goapi/domain/vendors/mocks"
	mQuery "github.com/cardbay/goapi/service/query/mocks"
)

type offerTestSuite struct {
	suite.Suite

	repo        *mOffer.Repo
	listingRepo *mListing.Repo
	vendorUC    *mVendor.Usecase
	q           *mQuery.Mongo
	uc          offer.Usecase
}

func Test(t *testing.T) {
	suite.Run(t, new(offerTestSuite))
}

func (s *offerTestSuite) SetupTest() {
	s.repo = &mOffer.Repo{}
	s.listingRepo = &mListing.Repo{}
	s.vendorUC = &mVendor.Usecase{}
	s.q = &mQuery.Mongo{}
	s.uc = New(&OfferUseCaseCfg{
		Repo:        s.repo,
		ListingRepo: s.listingRepo,
		VendorUC:    s.vendorUC,
		Query:       s.q,
	})
	// run the transactional body directly so the mocks inside it are hit
	s.q.On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c bCtx.Ctx, run func(bCtx.Ctx) error) error {
			return run(c)
		})
}

const (
	seller = domain.UserId("seller-1")
	bidder = domain.UserId("bidder-1")
)

func auctionListing(startingPrice int64, endsIn time.Duration) *listing.Listing {
	return &listing.Listing{
		Id:     listing.Id("listing-1"),
		Seller: seller,
		Status: listing.StatusActive,
		Auction: &listing.Auction{
			StartingPrice: decimal.NewFromInt(startingPrice),
			EndTime:       time.Now().Add(endsIn),
		},
		Version: 1,
	}
}

func rfqListing(minPrice int64) *listing.Listing {
	return &listing.Listing{
		Id:     listing.Id("listing-1"),
		Seller: seller,
		Status: listing.StatusActive,
		RFQ: &listing.RFQ{
			MinPrice: decimal.NewFromInt(minPrice),
		},
		Version: 1,
	}
}

func (s *offerTestSuite) TestSubmitAuctionAboveFloor() {
	c := bCtx.Background()
	l := auctionListing(100, time.Hour)

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.listingRepo.On("Update", mock.Anything, l.Id, l.Version, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.HighestBid != nil &&
			p.HighestBid.Amount.Equal(decimal.NewFromInt(150)) &&
			p.HighestBid.Bidder == bidder &&
			p.TotalOffers != nil && *p.TotalOffers == 1
	})).Return(nil)

	o, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(150),
	})
	s.Require().NoError(err)
	s.Equal(offer.StatusPending, o.Status)
	s.True(o.CommissionAmount.Equal(decimal.NewFromFloat(4.5)))
	s.listingRepo.AssertExpectations(s.T())
}

func (s *offerTestSuite) TestSubmitAuctionAtFloorRejected() {
	c := bCtx.Background()
	l := auctionListing(100, time.Hour)

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	// matching the floor is not enough, the bid must strictly exceed it
	_, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(100),
	})
	s.Require().ErrorIs(err, domain.ErrBidBelowFloor)
	s.repo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *offerTestSuite) TestSubmitAuctionBelowHighestBid() {
	c := bCtx.Background()
	l := auctionListing(100, time.Hour)
	l.HighestBid = &listing.HighestBid{
		Amount: decimal.NewFromInt(180),
		Bidder: domain.UserId("bidder-2"),
	}

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(150),
	})
	s.Require().ErrorIs(err, domain.ErrBidBelowFloor)
}

func (s *offerTestSuite) TestSubmitAuctionEnded() {
	c := bCtx.Background()
	l := auctionListing(100, -time.Minute)

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(150),
	})
	s.Require().ErrorIs(err, domain.ErrAuctionClosed)
}

func (s *offerTestSuite) TestSubmitRFQ() {
	c := bCtx.Background()
	l := rfqListing(200)

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.05), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	// quotes never touch the highest-bid snapshot
	s.listingRepo.On("Update", mock.Anything, l.Id, l.Version, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.HighestBid == nil && p.TotalOffers != nil && *p.TotalOffers == 1
	})).Return(nil)

	// the minimum price itself is acceptable for a quote
	o, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(200),
	})
	s.Require().NoError(err)
	s.True(o.CommissionAmount.Equal(decimal.NewFromInt(10)))
	s.listingRepo.AssertExpectations(s.T())
}

func (s *offerTestSuite) TestSubmitRFQBelowMinPrice() {
	c := bCtx.Background()
	l := rfqListing(200)

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(199),
	})
	s.Require().ErrorIs(err, domain.ErrBidBelowMinPrice)
}

func (s *offerTestSuite) TestSubmitDuplicatePending() {
	c := bCtx.Background()
	l := rfqListing(100)

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(1, nil)

	_, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(150),
	})
	s.Require().ErrorIs(err, domain.ErrDuplicatePendingBid)
	s.Require().ErrorIs(err, domain.ErrConflict)
	s.repo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *offerTestSuite) TestSubmitOwnListing() {
	c := bCtx.Background()
	l := rfqListing(100)

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, seller).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Submit(c, seller, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(150),
	})
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *offerTestSuite) TestSubmitInactiveListing() {
	c := bCtx.Background()
	l := rfqListing(100)
	l.Status = listing.StatusSold

	s.vendorUC.On("ResolveCommissionRate", mock.Anything, bidder).
		Return(decimal.NewFromFloat(0.03), nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: l.Id,
		Amount:    decimal.NewFromInt(150),
	})
	s.Require().ErrorIs(err, domain.ErrListingNotActive)
}

func (s *offerTestSuite) TestSubmitNonPositiveAmount() {
	c := bCtx.Background()

	_, err := s.uc.Submit(c, bidder, &offer.SubmitPayload{
		ListingId: listing.Id("listing-1"),
		Amount:    decimal.Zero,
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
	s.vendorUC.AssertNotCalled(s.T(), "ResolveCommissionRate", mock.Anything, mock.Anything)
}

func pendingOffer(l *listing.Listing, amount int64) *offer.Offer {
	return &offer.Offer{
		Id:        offer.Id("offer-1"),
		ListingId: l.Id,
		Bidder:    bidder,
		Amount:    decimal.NewFromInt(amount),
		Status:    offer.StatusPending,
	}
}

func (s *offerTestSuite) TestAccept() {
	c := bCtx.Background()
	l := auctionListing(100, -time.Minute)
	o := pendingOffer(l, 150)

	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Update", mock.Anything, o.Id, mock.MatchedBy(func(p offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusAccepted
	})).Return(nil)
	s.repo.On("UpdateAll", mock.Anything, mock.MatchedBy(func(p offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusRejected
	}), mock.Anything, mock.Anything, mock.Anything).Return(2, nil)
	s.listingRepo.On("Update", mock.Anything, l.Id, l.Version, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Status != nil && *p.Status == listing.StatusSold &&
			p.HighestBid != nil && p.HighestBid.Amount.Equal(o.Amount)
	})).Return(nil)

	accepted, err := s.uc.Accept(c, o.Id, seller)
	s.Require().NoError(err)
	s.Equal(offer.StatusAccepted, accepted.Status)
	s.repo.AssertExpectations(s.T())
	s.listingRepo.AssertExpectations(s.T())
}

func (s *offerTestSuite) TestAcceptAuctionStillOpen() {
	c := bCtx.Background()
	l := auctionListing(100, time.Hour)
	o := pendingOffer(l, 150)

	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Accept(c, o.Id, seller)
	s.Require().ErrorIs(err, domain.ErrAuctionStillOpen)
	s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (s *offerTestSuite) TestAcceptRFQImmediately() {
	c := bCtx.Background()
	l := rfqListing(100)
	o := pendingOffer(l, 150)

	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Update", mock.Anything, o.Id, mock.Anything).Return(nil)
	s.repo.On("UpdateAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	s.listingRepo.On("Update", mock.Anything, l.Id, l.Version, mock.Anything).Return(nil)

	// quotes have no bidding window, the seller may accept at any time
	accepted, err := s.uc.Accept(c, o.Id, seller)
	s.Require().NoError(err)
	s.Equal(offer.StatusAccepted, accepted.Status)
}

func (s *offerTestSuite) TestAcceptNotSeller() {
	c := bCtx.Background()
	l := rfqListing(100)
	o := pendingOffer(l, 150)

	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Accept(c, o.Id, bidder)
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *offerTestSuite) TestAcceptTerminalOffer() {
	c := bCtx.Background()
	l := rfqListing(100)
	o := pendingOffer(l, 150)
	o.Status = offer.StatusRejected

	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Accept(c, o.Id, seller)
	s.Require().ErrorIs(err, domain.ErrInvalidState)
}

func (s *offerTestSuite) TestReject() {
	c := bCtx.Background()
	l := rfqListing(100)
	o := pendingOffer(l, 150)

	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Update", mock.Anything, o.Id, mock.MatchedBy(func(p offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusRejected
	})).Return(nil)

	rejected, err := s.uc.Reject(c, o.Id, seller)
	s.Require().NoError(err)
	s.Equal(offer.StatusRejected, rejected.Status)
}

func (s *offerTestSuite) TestRejectAccepted() {
	c := bCtx.Background()
	l := rfqListing(100)
	o := pendingOffer(l, 150)
	o.Status = offer.StatusAccepted

	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	_, err := s.uc.Reject(c, o.Id, seller)
	s.Require().ErrorIs(err, domain.ErrInvalidState)
}
