package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/vendors"
	mVendor "github.com/cardbay/goapi/domain/vendors/mocks"
)

type vendorTestSuite struct {
	suite.Suite

	repo *mVendor.Repo
	uc   vendor.Usecase
}

func Test(t *testing.T) {
	suite.Run(t, new(vendorTestSuite))
}

func (s *vendorTestSuite) SetupTest() {
	s.repo = &mVendor.Repo{}
	s.uc = New(&VendorUseCaseCfg{Repo: s.repo})
}

func (s *vendorTestSuite) TestUpsertNewProfile() {
	c := bCtx.Background()
	userId := domain.UserId("vendor-1")

	s.repo.On("FindOne", mock.Anything, userId).Return(nil, domain.ErrNotFound)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *vendor.Vendor) bool {
		return v.UserId == userId &&
			v.BusinessName == "Mint Cards" &&
			v.CommissionRate.Equal(domain.DefaultCommissionRate)
	})).Return(nil)

	v, err := s.uc.Upsert(c, userId, &vendor.UpsertPayload{BusinessName: "Mint Cards"})
	s.Require().NoError(err)
	s.True(v.CommissionRate.Equal(domain.DefaultCommissionRate))
	s.repo.AssertExpectations(s.T())
}

func (s *vendorTestSuite) TestUpsertKeepsNegotiatedRate() {
	c := bCtx.Background()
	userId := domain.UserId("vendor-1")
	cur := &vendor.Vendor{
		UserId:         userId,
		BusinessName:   "Mint Cards",
		CommissionRate: decimal.RequireFromString("0.05"),
	}

	s.repo.On("FindOne", mock.Anything, userId).Return(cur, nil)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *vendor.Vendor) bool {
		return v.BusinessName == "Mint Cards & More" &&
			v.CommissionRate.Equal(decimal.RequireFromString("0.05"))
	})).Return(nil)

	// renaming the business must not reset the negotiated rate
	_, err := s.uc.Upsert(c, userId, &vendor.UpsertPayload{BusinessName: "Mint Cards & More"})
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *vendorTestSuite) TestResolveCommissionRate() {
	c := bCtx.Background()
	userId := domain.UserId("vendor-1")

	s.repo.On("FindOne", mock.Anything, userId).Return(&vendor.Vendor{
		UserId:         userId,
		CommissionRate: decimal.RequireFromString("0.07"),
	}, nil).Once()

	rate, err := s.uc.ResolveCommissionRate(c, userId)
	s.Require().NoError(err)
	s.True(rate.Equal(decimal.RequireFromString("0.07")))

	// second lookup is served from the rate cache
	rate, err = s.uc.ResolveCommissionRate(c, userId)
	s.Require().NoError(err)
	s.True(rate.Equal(decimal.RequireFromString("0.07")))
	s.repo.AssertExpectations(s.T())
}

func (s *vendorTestSuite) TestResolveCommissionRateDefault() {
	c := bCtx.Background()
	userId := domain.UserId("no-profile")

	s.repo.On("FindOne", mock.Anything, userId).Return(nil, domain.ErrNotFound)

	rate, err := s.uc.ResolveCommissionRate(c, userId)
	s.Require().NoError(err)
	s.True(rate.Equal(domain.DefaultCommissionRate))
}

func (s *vendorTestSuite) TestRecordSettlementMissingProfile() {
	c := bCtx.Background()
	userId := domain.UserId("no-profile")

	s.repo.On("RecordSettlement", mock.Anything, userId, mock.Anything).Return(domain.ErrNotFound)

	// the running totals are advisory, a missing profile is not an error
	s.NoError(s.uc.RecordSettlement(c, userId, decimal.NewFromInt(5)))
}
