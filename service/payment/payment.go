package payment

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/cardbay/goapi/base/ctx"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")

	// ErrDeclined is returned when the gateway rejects the charge.
	ErrDeclined = errors.New("charge declined")
)

// ChargePayload describes a single commission charge.
type ChargePayload struct {
	// Amount is the charge amount in the major unit, e.g. "12.50"
	Amount decimal.Decimal `json:"amount"`
	// Currency is an ISO-4217 code
	Currency string `json:"currency"`
	// PaymentMethod is the gateway token of the payer's instrument
	PaymentMethod string `json:"paymentMethod"`
	// IdempotencyKey dedupes retried charges on the gateway side
	IdempotencyKey string `json:"-"`
	// Metadata is attached to the gateway transaction for reconciliation
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ChargeResult is the gateway's record of a captured charge.
type ChargeResult struct {
	TransactionId string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CapturedAt    time.Time       `json:"capturedAt"`
}

// Gateway abstracts the payment processor.
type Gateway interface {
	Charge(ctx bCtx.Ctx, payload *ChargePayload) (*ChargeResult, error)
}

type GatewayCfg struct {
	HttpClient  http.Client
	Timeout     time.Duration
	ApiEndpoint string
	Apikey      string
}
