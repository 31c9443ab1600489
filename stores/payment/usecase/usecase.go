package usecase

import (
	"fmt"
	"time"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/base/metrics"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/offer"
	domainPayment "github.com/cardbay/goapi/domain/payment"
	"github.com/cardbay/goapi/domain/vendors"
	"github.com/cardbay/goapi/service/payment"
)

const defaultCurrency = "USD"

type PaymentUseCaseCfg struct {
	OfferRepo offer.Repo
	VendorUC  vendor.Usecase
	Gateway   payment.Gateway
}

type impl struct {
	offerRepo offer.Repo
	vendor    vendor.Usecase
	gateway   payment.Gateway
	met       metrics.Service
}

// New creates payment usecase
func New(cfg *PaymentUseCaseCfg) domainPayment.Usecase {
	return &impl{
		offerRepo: cfg.OfferRepo,
		vendor:    cfg.VendorUC,
		gateway:   cfg.Gateway,
		met:       metrics.New("settlement"),
	}
}

func (im *impl) SettleCommission(c ctx.Ctx, requester domain.UserId, payload *domainPayment.SettlePayload) (*offer.Offer, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"offerId":   payload.OfferId,
		"requester": requester,
	})

	o, err := im.offerRepo.FindOne(c, payload.OfferId)
	if err != nil {
		return nil, err
	}

	if !o.Bidder.Equals(requester) {
		return nil, fmt.Errorf("%w: commission is owed by the winning bidder", domain.ErrForbidden)
	}

	if o.Status != offer.StatusAccepted {
		return nil, fmt.Errorf("%w: commission applies to accepted offers only", domain.ErrInvalidState)
	}

	if o.CommissionPaid {
		return nil, domain.ErrCommissionPaid
	}

	currency := payload.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	// the offer id doubles as the gateway idempotency key, so a retry after
	// a timeout can never double charge
	res, err := im.gateway.Charge(c, &payment.ChargePayload{
		Amount:         o.CommissionAmount,
		Currency:       currency,
		PaymentMethod:  payload.PaymentMethod,
		IdempotencyKey: o.Id.String(),
		Metadata: map[string]string{
			"offerId":   o.Id.String(),
			"listingId": o.ListingId.String(),
			"bidder":    string(o.Bidder),
		},
	})
	if err != nil {
		c.WithField("err", err).Error("gateway.Charge failed")
		im.met.BumpSum("settle.failed", 1)
		if err == payment.ErrDeclined {
			return nil, fmt.Errorf("%w: charge declined", domain.ErrPayment)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrPayment, err)
	}

	now := time.Now()
	paid := true
	if err := im.offerRepo.Update(c, o.Id, offer.Patchable{
		CommissionPaid: &paid,
		PaymentRef:     &res.TransactionId,
		UpdatedAt:      &now,
	}); err != nil {
		// the charge went through but the flag write failed. The gateway
		// idempotency key makes the retry safe.
		c.WithFields(log.Fields{
			"err":           err,
			"transactionId": res.TransactionId,
		}).Error("offerRepo.Update failed after charge")
		return nil, err
	}

	if err := im.vendor.RecordSettlement(c, o.Bidder, o.CommissionAmount); err != nil {
		c.WithField("err", err).Error("vendor.RecordSettlement failed")
	}

	im.met.BumpSum("settle.succeeded", 1)

	o.CommissionPaid = true
	o.PaymentRef = res.TransactionId
	o.UpdatedAt = now
	return o, nil
}
