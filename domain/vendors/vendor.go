package vendor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
)

// Vendor is the business profile wrapping a user account. CommissionRate
// is the fraction of an accepted offer owed as commission, fixed per vendor.
// Leads and TotalCommissionPaid are running totals bumped on every
// successful settlement.
type Vendor struct {
	UserId              domain.UserId   `json:"userId" bson:"userId"`
	BusinessName        string          `json:"businessName" bson:"businessName"`
	CommissionRate      decimal.Decimal `json:"commissionRate" bson:"commissionRate"`
	Leads               int64           `json:"leads" bson:"leads"`
	TotalCommissionPaid decimal.Decimal `json:"totalCommissionPaid" bson:"totalCommissionPaid"`
	CreatedAt           time.Time       `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt           time.Time       `json:"updatedAt" bson:"updatedAt,omitempty"`
}

type Repo interface {
	Upsert(ctx ctx.Ctx, vendor *Vendor) error
	FindOne(ctx ctx.Ctx, userId domain.UserId) (*Vendor, error)
	// RecordSettlement bumps leads by one and totalCommissionPaid by
	// commission for the vendor.
	RecordSettlement(ctx ctx.Ctx, userId domain.UserId, commission decimal.Decimal) error
}

// UpsertPayload creates or reshapes a vendor profile. CommissionRate is
// optional; absent means keep the current rate, or the default for a new
// profile.
type UpsertPayload struct {
	BusinessName   string           `json:"businessName" validate:"required"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
}

type Usecase interface {
	Upsert(ctx ctx.Ctx, userId domain.UserId, payload *UpsertPayload) (*Vendor, error)
	Get(ctx ctx.Ctx, userId domain.UserId) (*Vendor, error)
	// ResolveCommissionRate returns the vendor's negotiated rate, or the
	// default rate when the user has no vendor profile.
	ResolveCommissionRate(ctx ctx.Ctx, userId domain.UserId) (decimal.Decimal, error)
	RecordSettlement(ctx ctx.Ctx, userId domain.UserId, commission decimal.Decimal) error
}
