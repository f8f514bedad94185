package service

import "errors"

// Sentinel errors the handler layer maps onto HTTP statuses: invalid-input
// errors become 400 before any mutation, gorm.ErrRecordNotFound becomes 404,
// everything else is a store failure.
var (
	ErrMissingParticipant = errors.New("both participant ids are required")
	ErrSelfConversation   = errors.New("cannot start a conversation with yourself")
	ErrEmptyMessage       = errors.New("message body is required")
	ErrMessageTooLong     = errors.New("message body exceeds the maximum length")
	ErrInvalidProduct     = errors.New("invalid product input")
	ErrNotOwner           = errors.New("not the owner of this resource")
	ErrEmptyOrder         = errors.New("order needs at least one item")
	ErrOrderNotPending    = errors.New("order is not pending")
	ErrPickupNotPending   = errors.New("pickup is not pending")
	ErrMissingFields      = errors.New("missing required fields")
)
