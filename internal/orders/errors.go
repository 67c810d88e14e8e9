package orders

import "errors"

var (
	ErrNotFound           = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid order transition")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrBookingRefTaken    = errors.New("booking reference already assigned")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
)
