package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrForbidden will throw if the requester is not allowed to act on the resource
	ErrForbidden = errors.New("operation not permitted")
	// ErrUnauthorized will throw if the credential is missing or invalid
	ErrUnauthorized = errors.New("missing or invalid credential")
	// ErrInvalidState will throw if the operation is not valid for the
	// entity's current lifecycle state
	ErrInvalidState = errors.New("operation invalid for current state")
	// ErrPayment will throw if the external payment collaborator fails
	ErrPayment = errors.New("payment failed")
)

// Lifecycle errors wrap the taxonomy sentinels above so the delivery layer
// can map them to HTTP statuses with errors.Is.
var (
	ErrListingNotActive    = fmt.Errorf("%w: listing is not active", ErrInvalidState)
	ErrAuctionClosed       = fmt.Errorf("%w: auction already closed", ErrInvalidState)
	ErrAuctionStillOpen    = fmt.Errorf("%w: auction is still open", ErrInvalidState)
	ErrBidBelowFloor       = fmt.Errorf("%w: bid must exceed current highest bid and starting price", ErrBadParamInput)
	ErrBidBelowMinPrice    = fmt.Errorf("%w: offer is below minimum price", ErrBadParamInput)
	ErrDuplicatePendingBid = fmt.Errorf("%w: bidder already has a pending offer on this listing", ErrConflict)
	ErrCommissionPaid      = fmt.Errorf("%w: commission already paid", ErrInvalidState)
	ErrTradingNotPermitted = fmt.Errorf("%w: trading not permitted for this account", ErrForbidden)
)
