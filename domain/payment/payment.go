package payment

import (
	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/offer"
)

// SettlePayload triggers collection of the commission owed on an accepted
// offer.
type SettlePayload struct {
	OfferId       offer.Id `json:"offerId" validate:"required"`
	PaymentMethod string   `json:"paymentMethod" validate:"required"`
	Currency      string   `json:"currency"`
}

type Usecase interface {
	// SettleCommission charges the commission fixed on the offer and marks
	// it paid. Paying twice fails without reaching the gateway.
	SettleCommission(ctx ctx.Ctx, requester domain.UserId, payload *SettlePayload) (*offer.Offer, error)
}
