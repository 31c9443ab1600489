package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Table is a mongo collection name
type Table string

const (
	TableAccounts    Table = "accounts"
	TableVendors     Table = "vendors"
	TableListings    Table = "listings"
	TableOffers      Table = "offers"
	TableHealthCheck Table = "healthcheck"
)

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

// UserId identifies an account. Stored lower-cased so lookups are
// case-insensitive.
type UserId string

func (u UserId) ToLower() UserId {
	return UserId(strings.ToLower(string(u)))
}

func (u UserId) ToLowerStr() string {
	return strings.ToLower(string(u))
}

func (u UserId) ToLowerPtr() *UserId {
	res := u.ToLower()
	return &res
}

func (u UserId) IsEmpty() bool {
	return len(u) == 0
}

func (u UserId) Equals(o UserId) bool {
	return u.ToLower() == o.ToLower()
}

// DefaultCommissionRate applies when the bidder has no vendor profile with
// its own negotiated rate.
var DefaultCommissionRate = decimal.RequireFromString("0.03")
