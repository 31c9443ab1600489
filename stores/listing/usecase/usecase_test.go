package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/ptr"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
	mAccount "github.com/cardbay/goapi/domain/account/mocks"
	mFile "github.com/cardbay/goapi/domain/file/mocks"
	"github.com/cardbay/goapi/domain/listing"
	mListing "github.com/cardbay/goapi/domain/listing/mocks"
)

type listingTestSuite struct {
	suite.Suite

	repo      *mListing.Repo
	accountUC *mAccount.Usecase
	fileUC    *mFile.Usecase
	uc        listing.Usecase
}

func Test(t *testing.T) {
	suite.Run(t, new(listingTestSuite))
}

func (s *listingTestSuite) SetupTest() {
	s.repo = &mListing.Repo{}
	s.accountUC = &mAccount.Usecase{}
	s.fileUC = &mFile.Usecase{}
	s.uc = New(&ListingUseCaseCfg{
		Repo:      s.repo,
		AccountUC: s.accountUC,
		FileUC:    s.fileUC,
	})
}

const seller = domain.UserId("seller-1")

func validCard() listing.Card {
	return listing.Card{
		Name:      "Shining Charizard",
		Set:       "Neo Destiny",
		Year:      2002,
		Condition: "near mint",
		Rarity:    "secret rare",
	}
}

func (s *listingTestSuite) TestCreateAuction() {
	c := bCtx.Background()

	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Status == listing.StatusActive &&
			l.Version == 1 &&
			l.Auction != nil && l.RFQ == nil &&
			l.Auction.StartingPrice.Equal(decimal.NewFromInt(100))
	})).Return(nil)

	startingPrice := decimal.NewFromInt(100)
	l, err := s.uc.Create(c, seller, &listing.CreatePayload{
		Card:          validCard(),
		StartingPrice: &startingPrice,
	})
	s.Require().NoError(err)
	s.Equal(listing.SaleModeAuction, l.SaleMode())
	// 72h default window
	s.WithinDuration(time.Now().Add(72*time.Hour), l.Auction.EndTime, time.Minute)
	s.repo.AssertExpectations(s.T())
}

func (s *listingTestSuite) TestCreateRFQ() {
	c := bCtx.Background()

	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.RFQ != nil && l.Auction == nil &&
			l.RFQ.MinPrice.Equal(decimal.NewFromInt(50))
	})).Return(nil)

	minPrice := decimal.NewFromInt(50)
	l, err := s.uc.Create(c, seller, &listing.CreatePayload{
		Card:     validCard(),
		IsRFQ:    true,
		MinPrice: &minPrice,
	})
	s.Require().NoError(err)
	s.Equal(listing.SaleModeRFQ, l.SaleMode())
}

func (s *listingTestSuite) TestCreateModeFieldsAreExclusive() {
	c := bCtx.Background()
	price := decimal.NewFromInt(100)

	// auction fields on a quote listing
	_, err := s.uc.Create(c, seller, &listing.CreatePayload{
		Card:          validCard(),
		IsRFQ:         true,
		MinPrice:      &price,
		StartingPrice: &price,
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)

	// quote fields on an auction listing
	_, err = s.uc.Create(c, seller, &listing.CreatePayload{
		Card:          validCard(),
		StartingPrice: &price,
		MinPrice:      &price,
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)

	s.repo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingTestSuite) TestCreateEndTimeAndDurationConflict() {
	c := bCtx.Background()
	price := decimal.NewFromInt(100)
	endTime := time.Now().Add(time.Hour)
	duration := 24

	_, err := s.uc.Create(c, seller, &listing.CreatePayload{
		Card:            validCard(),
		StartingPrice:   &price,
		AuctionEndTime:  &endTime,
		AuctionDuration: &duration,
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingTestSuite) TestCreatePastEndTime() {
	c := bCtx.Background()
	price := decimal.NewFromInt(100)
	endTime := time.Now().Add(-time.Hour)

	_, err := s.uc.Create(c, seller, &listing.CreatePayload{
		Card:           validCard(),
		StartingPrice:  &price,
		AuctionEndTime: &endTime,
	})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingTestSuite) TestCreateGradedCard() {
	c := bCtx.Background()
	price := decimal.NewFromInt(100)

	card := validCard()
	card.IsGraded = true
	card.Grade = ptr.Float64(11)
	card.GradingCompany = ptr.String("PSA")
	_, err := s.uc.Create(c, seller, &listing.CreatePayload{Card: card, StartingPrice: &price})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)

	card.Grade = ptr.Float64(9.5)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	_, err = s.uc.Create(c, seller, &listing.CreatePayload{Card: card, StartingPrice: &price})
	s.Require().NoError(err)
}

func (s *listingTestSuite) TestCreateUngradedCardWithGradeFields() {
	c := bCtx.Background()
	price := decimal.NewFromInt(100)

	card := validCard()
	card.Grade = ptr.Float64(9)
	_, err := s.uc.Create(c, seller, &listing.CreatePayload{Card: card, StartingPrice: &price})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingTestSuite) TestCreateUploadsImages() {
	c := bCtx.Background()
	price := decimal.NewFromInt(100)

	s.fileUC.On("UploadImage", mock.Anything, "front-data", mock.Anything).
		Return("https://cdn.example.com/front.png", nil)
	s.fileUC.On("UploadImage", mock.Anything, "back-data", mock.Anything).
		Return("https://cdn.example.com/back.png", nil)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	l, err := s.uc.Create(c, seller, &listing.CreatePayload{
		Card:          validCard(),
		StartingPrice: &price,
		FrontImage:    "front-data",
		BackImage:     "back-data",
	})
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/front.png", l.Card.FrontImageUrl)
	s.Equal("https://cdn.example.com/back.png", l.Card.BackImageUrl)
}

func activeListing() *listing.Listing {
	price := decimal.NewFromInt(100)
	return &listing.Listing{
		Id:      listing.Id("listing-1"),
		Seller:  seller,
		Card:    validCard(),
		Status:  listing.StatusActive,
		Auction: &listing.Auction{StartingPrice: price, EndTime: time.Now().Add(time.Hour)},
		Version: 3,
	}
}

func (s *listingTestSuite) TestSearchProjectsSellers() {
	c := bCtx.Background()
	l := activeListing()

	s.repo.On("FindAll", mock.Anything, mock.Anything).Return([]*listing.Listing{l}, nil)
	s.repo.On("Count", mock.Anything, mock.Anything).Return(1, nil)
	s.accountUC.On("GetSimpleBatch", mock.Anything, []domain.UserId{seller}).
		Return(map[domain.UserId]*account.SimpleAccount{
			seller: {UserId: seller, Alias: "the-card-shop"},
		}, nil)

	res, err := s.uc.Search(c)
	s.Require().NoError(err)
	s.Require().Len(res.Listings, 1)
	s.Equal(1, res.Total)
	s.Require().NotNil(res.Listings[0].Seller)
	s.Equal("the-card-shop", res.Listings[0].Seller.Alias)
}

func (s *listingTestSuite) TestUpdateNotSeller() {
	c := bCtx.Background()
	l := activeListing()

	s.repo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	requester := &domain.Identity{UserId: domain.UserId("someone-else")}
	_, err := s.uc.Update(c, l.Id, requester, &listing.UpdatePayload{})
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *listingTestSuite) TestUpdateAsAdmin() {
	c := bCtx.Background()
	l := activeListing()

	s.repo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Update", mock.Anything, l.Id, l.Version, mock.Anything).Return(nil)

	requester := &domain.Identity{UserId: domain.UserId("admin-1"), IsAdmin: true}
	_, err := s.uc.Update(c, l.Id, requester, &listing.UpdatePayload{})
	s.Require().NoError(err)
}

func (s *listingTestSuite) TestUpdateInvalidTransition() {
	c := bCtx.Background()
	l := activeListing()
	l.Status = listing.StatusSold

	s.repo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	requester := &domain.Identity{UserId: seller}
	active := listing.StatusActive
	_, err := s.uc.Update(c, l.Id, requester, &listing.UpdatePayload{Status: &active})
	s.Require().ErrorIs(err, domain.ErrInvalidState)
}

func (s *listingTestSuite) TestUpdatePriceOnAuctionWithBids() {
	c := bCtx.Background()
	l := activeListing()
	l.HighestBid = &listing.HighestBid{Amount: decimal.NewFromInt(150)}

	s.repo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	requester := &domain.Identity{UserId: seller}
	price := decimal.NewFromInt(200)
	_, err := s.uc.Update(c, l.Id, requester, &listing.UpdatePayload{Price: &price})
	s.Require().ErrorIs(err, domain.ErrInvalidState)
}

func (s *listingTestSuite) TestUpdatePrice() {
	c := bCtx.Background()
	l := activeListing()

	s.repo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Update", mock.Anything, l.Id, l.Version, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.StartingPrice != nil && p.StartingPrice.Equal(decimal.NewFromInt(200))
	})).Return(nil)

	requester := &domain.Identity{UserId: seller}
	price := decimal.NewFromInt(200)
	_, err := s.uc.Update(c, l.Id, requester, &listing.UpdatePayload{Price: &price})
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *listingTestSuite) TestCancel() {
	c := bCtx.Background()
	l := activeListing()

	s.repo.On("FindOne", mock.Anything, l.Id).Return(l, nil)
	s.repo.On("Update", mock.Anything, l.Id, l.Version, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Status != nil && *p.Status == listing.StatusCancelled
	})).Return(nil)

	s.Require().NoError(s.uc.Cancel(c, l.Id, seller))
}

func (s *listingTestSuite) TestCancelTerminal() {
	c := bCtx.Background()
	l := activeListing()
	l.Status = listing.StatusSold

	s.repo.On("FindOne", mock.Anything, l.Id).Return(l, nil)

	err := s.uc.Cancel(c, l.Id, seller)
	s.Require().ErrorIs(err, domain.ErrInvalidState)
}

func (s *listingTestSuite) TestIncreaseViewCountMissing() {
	c := bCtx.Background()

	s.repo.On("FindOne", mock.Anything, listing.Id("missing")).Return(nil, domain.ErrNotFound)

	_, err := s.uc.IncreaseViewCount(c, listing.Id("missing"))
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.repo.AssertNotCalled(s.T(), "IncreaseViewCount", mock.Anything, mock.Anything)
}
