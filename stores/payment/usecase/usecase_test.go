package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/listing"
	"github.com/cardbay/goapi/domain/offer"
	mOffer "github.com/cardbay/goapi/domain/offer/mocks"
	domainPayment "github.com/cardbay/goapi/domain/payment"
	mVendor "github.com/cardbay/goapi/domain/vendors/mocks"
	"github.com/cardbay/goapi/service/payment"
	mGateway "github.com/cardbay/goapi/service/payment/mocks"
)

type paymentTestSuite struct {
	suite.Suite

	offerRepo *mOffer.Repo
	vendorUC  *mVendor.Usecase
	gateway   *mGateway.Gateway
	uc        domainPayment.Usecase
}

func Test(t *testing.T) {
	suite.Run(t, new(paymentTestSuite))
}

func (s *paymentTestSuite) SetupTest() {
	s.offerRepo = &mOffer.Repo{}
	s.vendorUC = &mVendor.Usecase{}
	s.gateway = &mGateway.Gateway{}
	s.uc = New(&PaymentUseCaseCfg{
		OfferRepo: s.offerRepo,
		VendorUC:  s.vendorUC,
		Gateway:   s.gateway,
	})
}

const bidder = domain.UserId("bidder-1")

func acceptedOffer() *offer.Offer {
	return &offer.Offer{
		Id:               offer.Id("offer-1"),
		ListingId:        listing.Id("listing-1"),
		Bidder:           bidder,
		Amount:           decimal.NewFromInt(150),
		Status:           offer.StatusAccepted,
		CommissionAmount: decimal.NewFromFloat(4.5),
	}
}

func settlePayload() *domainPayment.SettlePayload {
	return &domainPayment.SettlePayload{
		OfferId:       offer.Id("offer-1"),
		PaymentMethod: "pm_card_visa",
	}
}

func (s *paymentTestSuite) TestSettleCommission() {
	c := bCtx.Background()
	o := acceptedOffer()

	s.offerRepo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.gateway.On("Charge", mock.Anything, mock.MatchedBy(func(p *payment.ChargePayload) bool {
		return p.Amount.Equal(o.CommissionAmount) &&
			p.Currency == "USD" &&
			p.IdempotencyKey == o.Id.String()
	})).Return(&payment.ChargeResult{TransactionId: "txn-1", Status: "captured"}, nil)
	s.offerRepo.On("Update", mock.Anything, o.Id, mock.MatchedBy(func(p offer.Patchable) bool {
		return p.CommissionPaid != nil && *p.CommissionPaid &&
			p.PaymentRef != nil && *p.PaymentRef == "txn-1"
	})).Return(nil)
	s.vendorUC.On("RecordSettlement", mock.Anything, bidder, o.CommissionAmount).Return(nil)

	settled, err := s.uc.SettleCommission(c, bidder, settlePayload())
	s.Require().NoError(err)
	s.True(settled.CommissionPaid)
	s.Equal("txn-1", settled.PaymentRef)
	s.gateway.AssertExpectations(s.T())
	s.offerRepo.AssertExpectations(s.T())
	s.vendorUC.AssertExpectations(s.T())
}

func (s *paymentTestSuite) TestSettleCommissionAlreadyPaid() {
	c := bCtx.Background()
	o := acceptedOffer()
	o.CommissionPaid = true

	s.offerRepo.On("FindOne", mock.Anything, o.Id).Return(o, nil)

	_, err := s.uc.SettleCommission(c, bidder, settlePayload())
	s.Require().ErrorIs(err, domain.ErrCommissionPaid)
	s.gateway.AssertNotCalled(s.T(), "Charge", mock.Anything, mock.Anything)
}

func (s *paymentTestSuite) TestSettleCommissionNotBidder() {
	c := bCtx.Background()
	o := acceptedOffer()

	s.offerRepo.On("FindOne", mock.Anything, o.Id).Return(o, nil)

	_, err := s.uc.SettleCommission(c, domain.UserId("seller-1"), settlePayload())
	s.Require().ErrorIs(err, domain.ErrForbidden)
	s.gateway.AssertNotCalled(s.T(), "Charge", mock.Anything, mock.Anything)
}

func (s *paymentTestSuite) TestSettleCommissionNotAccepted() {
	c := bCtx.Background()
	o := acceptedOffer()
	o.Status = offer.StatusPending

	s.offerRepo.On("FindOne", mock.Anything, o.Id).Return(o, nil)

	_, err := s.uc.SettleCommission(c, bidder, settlePayload())
	s.Require().ErrorIs(err, domain.ErrInvalidState)
}

func (s *paymentTestSuite) TestSettleCommissionDeclined() {
	c := bCtx.Background()
	o := acceptedOffer()

	s.offerRepo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.gateway.On("Charge", mock.Anything, mock.Anything).Return(nil, payment.ErrDeclined)

	_, err := s.uc.SettleCommission(c, bidder, settlePayload())
	s.Require().ErrorIs(err, domain.ErrPayment)
	// a declined charge never flips the paid flag
	s.offerRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (s *paymentTestSuite) TestSettleCommissionCustomCurrency() {
	c := bCtx.Background()
	o := acceptedOffer()

	s.offerRepo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.gateway.On("Charge", mock.Anything, mock.MatchedBy(func(p *payment.ChargePayload) bool {
		return p.Currency == "EUR"
	})).Return(&payment.ChargeResult{TransactionId: "txn-2"}, nil)
	s.offerRepo.On("Update", mock.Anything, o.Id, mock.Anything).Return(nil)
	s.vendorUC.On("RecordSettlement", mock.Anything, bidder, o.CommissionAmount).Return(nil)

	p := settlePayload()
	p.Currency = "EUR"
	_, err := s.uc.SettleCommission(c, bidder, p)
	s.Require().NoError(err)
}

func (s *paymentTestSuite) TestSettleCommissionVendorUpdateBestEffort() {
	c := bCtx.Background()
	o := acceptedOffer()

	s.offerRepo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	s.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&payment.ChargeResult{TransactionId: "txn-3"}, nil)
	s.offerRepo.On("Update", mock.Anything, o.Id, mock.Anything).Return(nil)
	s.vendorUC.On("RecordSettlement", mock.Anything, bidder, o.CommissionAmount).
		Return(domain.ErrNotFound)

	// the vendor running totals are advisory, a failed bump never unwinds
	// a captured charge
	settled, err := s.uc.SettleCommission(c, bidder, settlePayload())
	s.Require().NoError(err)
	s.True(settled.CommissionPaid)
}
