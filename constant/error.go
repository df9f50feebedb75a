package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidTransition
	ErrInvariantViolation
	ErrInsufficientInventory
	ErrDuplicateEvent
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:               "success",
	ErrInternal:              "error internal",
	ErrNotFound:              "data not found",
	ErrInvalidRequest:        "invalid request",
	ErrUnauthorize:           "unauthorize request",
	ErrInvalidTransition:     "event not allowed from current order status",
	ErrInvariantViolation:    "inventory or order counter invariant violated",
	ErrInsufficientInventory: "insufficient inventory to satisfy reservation",
	ErrDuplicateEvent:        "event with this idempotency key already applied",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:               http.StatusOK,
	ErrInternal:              http.StatusInternalServerError,
	ErrNotFound:              http.StatusNotFound,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrUnauthorize:           http.StatusUnauthorized,
	ErrInvalidTransition:     http.StatusConflict,
	ErrInvariantViolation:    http.StatusInternalServerError,
	ErrInsufficientInventory: http.StatusConflict,
	ErrDuplicateEvent:        http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:               "0000",
	ErrInternal:              "0001",
	ErrNotFound:              "0002",
	ErrInvalidRequest:        "0003",
	ErrUnauthorize:           "0004",
	ErrInvalidTransition:     "0005",
	ErrInvariantViolation:    "0006",
	ErrInsufficientInventory: "0007",
	ErrDuplicateEvent:        "0008",
}
