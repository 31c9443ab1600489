package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
)

type Id string

func (i Id) String() string {
	return string(i)
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusActive, StatusSold, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status transition is allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSold, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces active -> {sold, expired, cancelled}.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusDraft:
		return next == StatusPending || next == StatusActive || next == StatusCancelled
	case StatusPending:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next.IsTerminal()
	}
	return false
}

type SaleMode string

const (
	SaleModeAuction SaleMode = "auction"
	SaleModeRFQ     SaleMode = "request-for-quote"
)

// Card is the collectible being sold.
type Card struct {
	Name           string   `json:"name" bson:"name"`
	Set            string   `json:"set" bson:"set"`
	Year           int      `json:"year" bson:"year"`
	Condition      string   `json:"condition" bson:"condition"`
	Rarity         string   `json:"rarity" bson:"rarity"`
	IsGraded       bool     `json:"isGraded" bson:"isGraded"`
	Grade          *float64 `json:"grade,omitempty" bson:"grade,omitempty"`
	GradingCompany *string  `json:"gradingCompany,omitempty" bson:"gradingCompany,omitempty"`
	FrontImageUrl  string   `json:"frontImageUrl" bson:"frontImageUrl"`
	BackImageUrl   string   `json:"backImageUrl" bson:"backImageUrl"`
}

// Auction is the sale-mode variant for time-boxed bidding. A listing holds
// exactly one of Auction or RFQ.
type Auction struct {
	StartingPrice decimal.Decimal `json:"startingPrice" bson:"startingPrice"`
	EndTime       time.Time       `json:"endTime" bson:"endTime"`
}

// RFQ is the request-for-quote variant. Any offer meeting MinPrice is
// acceptable, there is no bidding window.
type RFQ struct {
	MinPrice decimal.Decimal `json:"minPrice" bson:"minPrice"`
}

// HighestBid is the denormalized snapshot of the leading offer on an
// auction listing. It is maintained by the offer usecase inside the same
// transaction as the offer write.
type HighestBid struct {
	Amount decimal.Decimal `json:"amount" bson:"amount"`
	Bidder domain.UserId   `json:"bidder" bson:"bidder"`
	At     time.Time       `json:"at" bson:"at"`
}

type Listing struct {
	Id          Id            `json:"id" bson:"id"`
	Seller      domain.UserId `json:"seller" bson:"seller"`
	Card        Card          `json:"card" bson:"card"`
	Description string        `json:"description" bson:"description"`
	Auction     *Auction      `json:"auction,omitempty" bson:"auction,omitempty"`
	RFQ         *RFQ          `json:"rfq,omitempty" bson:"rfq,omitempty"`
	Status      Status        `json:"status" bson:"status"`
	HighestBid  *HighestBid   `json:"highestBid,omitempty" bson:"highestBid,omitempty"`
	TotalOffers int32         `json:"totalOffers" bson:"totalOffers"`
	ViewCount   int32         `json:"viewCount" bson:"viewCount"`
	// Version guards read-then-write sequences. Every mutation bumps it and
	// patches are matched on the version read, so concurrent writers lose
	// with ErrConflict instead of silently overwriting.
	Version   int64     `json:"-" bson:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) SaleMode() SaleMode {
	if l.Auction != nil {
		return SaleModeAuction
	}
	return SaleModeRFQ
}

// Floor returns the minimum acceptable next bid for an auction listing,
// which is max(startingPrice, current highest bid).
func (l *Listing) Floor() decimal.Decimal {
	floor := l.Auction.StartingPrice
	if l.HighestBid != nil && l.HighestBid.Amount.GreaterThan(floor) {
		floor = l.HighestBid.Amount
	}
	return floor
}

// ListingWithSeller is a read model projecting the seller's public profile
// onto a listing. No credentials ever cross this boundary.
type ListingWithSeller struct {
	Listing `bson:"inline"`
	Seller  *account.SimpleAccount `json:"sellerProfile"`
}

type Patchable struct {
	Status        *Status          `bson:"status,omitempty"`
	StartingPrice *decimal.Decimal `bson:"auction.startingPrice,omitempty"`
	MinPrice      *decimal.Decimal `bson:"rfq.minPrice,omitempty"`
	EndTime       *time.Time       `bson:"auction.endTime,omitempty"`
	HighestBid    *HighestBid      `bson:"highestBid,omitempty"`
	TotalOffers   *int32           `bson:"totalOffers,omitempty"`
	UpdatedAt     *time.Time       `bson:"updatedAt,omitempty"`
}

type SearchResult struct {
	Listings []*ListingWithSeller `json:"listings"`
	Total    int                  `json:"total"`
	Offset   int32                `json:"offset"`
	Limit    int32                `json:"limit"`
}

type FindAllOptions struct {
	Seller   *domain.UserId
	Status   *Status
	SaleMode *SaleMode
	Offset   *int32
	Limit    *int32
	SortBy   *string
	SortDir  *domain.SortDir
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

func WithSeller(seller domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithSaleMode(mode SaleMode) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SaleMode = &mode
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

func WithSort(sortBy string, sortDir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortBy
		options.SortDir = &sortDir
		return nil
	}
}

type Repo interface {
	Insert(ctx ctx.Ctx, listing *Listing) error
	FindOne(ctx ctx.Ctx, id Id) (*Listing, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	// Update patches the listing iff its stored version still equals
	// version; it returns domain.ErrConflict on a lost race.
	Update(ctx ctx.Ctx, id Id, version int64, patchable Patchable) error
	IncreaseViewCount(ctx ctx.Ctx, id Id) (int32, error)
}

type CreatePayload struct {
	Card            Card             `json:"card"`
	Description     string           `json:"description"`
	IsRFQ           bool             `json:"isRFQ"`
	StartingPrice   *decimal.Decimal `json:"startingPrice"`
	MinPrice        *decimal.Decimal `json:"minPrice"`
	AuctionDuration *int             `json:"auctionDuration"` // hours
	AuctionEndTime  *time.Time       `json:"auctionEndTime"`
	FrontImage      string           `json:"frontImage"` // base64 data url
	BackImage       string           `json:"backImage"`
}

type UpdatePayload struct {
	Status  *Status          `json:"status"`
	Price   *decimal.Decimal `json:"price"`
	EndTime *time.Time       `json:"endTime"`
}

type SearchParams struct {
	Offset   int32   `query:"offset"`
	Limit    int32   `query:"limit"`
	Status   *Status `query:"status"`
	SaleMode *string `query:"saleMode"`
	Seller   *string `query:"seller"`
}

type Usecase interface {
	Create(ctx ctx.Ctx, seller domain.UserId, payload *CreatePayload) (*Listing, error)
	Search(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (*SearchResult, error)
	Get(ctx ctx.Ctx, id Id) (*ListingWithSeller, error)
	Update(ctx ctx.Ctx, id Id, requester *domain.Identity, payload *UpdatePayload) (*Listing, error)
	Cancel(ctx ctx.Ctx, id Id, requester domain.UserId) error
	IncreaseViewCount(ctx ctx.Ctx, id Id) (int32, error)
}
