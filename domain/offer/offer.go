package offer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/listing"
)

type Id string

func (i Id) String() string {
	return string(i)
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// IsTerminal reports whether the status admits no further transition.
// Only pending offers may move.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// Offer is a bidder's proposed price against a listing. CommissionAmount is
// fixed at creation time from the rate prevailing then; later rate changes
// never reprice an existing offer. CommissionPaid never reverts to false.
type Offer struct {
	Id               Id              `json:"id" bson:"id"`
	ListingId        listing.Id      `json:"listingId" bson:"listingId"`
	Bidder           domain.UserId   `json:"bidder" bson:"bidder"`
	Amount           decimal.Decimal `json:"amount" bson:"amount"`
	Message          string          `json:"message,omitempty" bson:"message,omitempty"`
	Status           Status          `json:"status" bson:"status"`
	CommissionAmount decimal.Decimal `json:"commissionAmount" bson:"commissionAmount"`
	CommissionPaid   bool            `json:"commissionPaid" bson:"commissionPaid"`
	PaymentRef       string          `json:"-" bson:"paymentRef,omitempty"`
	CreatedAt        time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt" bson:"updatedAt"`
}

type Patchable struct {
	Status         *Status    `bson:"status,omitempty"`
	CommissionPaid *bool      `bson:"commissionPaid,omitempty"`
	PaymentRef     *string    `bson:"paymentRef,omitempty"`
	UpdatedAt      *time.Time `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	ListingId *listing.Id
	Bidder    *domain.UserId
	Status    *Status
	StatusIn  []Status
	NotId     *Id
	Offset    *int32
	Limit     *int32
	Sort      *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithListingId(id listing.Id) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ListingId = &id
		return nil
	}
}

func WithBidder(bidder domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Bidder = bidder.ToLowerPtr()
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithStatusIn(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.StatusIn = statuses
		return nil
	}
}

func WithNotId(id Id) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.NotId = &id
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

type Repo interface {
	Insert(ctx ctx.Ctx, offer *Offer) error
	FindOne(ctx ctx.Ctx, id Id) (*Offer, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Update(ctx ctx.Ctx, id Id, patchable Patchable) error
	// UpdateAll patches every offer matching the options and returns the
	// number patched.
	UpdateAll(ctx ctx.Ctx, patchable Patchable, opts ...FindAllOptionsFunc) (int, error)
}

type SubmitPayload struct {
	ListingId listing.Id      `json:"listingId" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Message   string          `json:"message"`
}

type SearchResult struct {
	Offers []*Offer `json:"offers"`
	Total  int      `json:"total"`
	Offset int32    `json:"offset"`
	Limit  int32    `json:"limit"`
}

type Usecase interface {
	Submit(ctx ctx.Ctx, bidder domain.UserId, payload *SubmitPayload) (*Offer, error)
	Search(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (*SearchResult, error)
	Get(ctx ctx.Ctx, id Id) (*Offer, error)
	Accept(ctx ctx.Ctx, id Id, requester domain.UserId) (*Offer, error)
	Reject(ctx ctx.Ctx, id Id, requester domain.UserId) (*Offer, error)
}
