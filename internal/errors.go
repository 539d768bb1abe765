package models

import "errors"

var (
	ErrInvalidUUID        = errors.New("invalid uuid")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingTrip        = errors.New("trip not found")
	ErrNoPassengers       = errors.New("booking has no passengers")
	ErrSeatCountMismatch  = errors.New("passenger and seat counts differ")
	ErrSeatAssignment     = errors.New("passenger seat is not among the selected seats")
	ErrSeatsUnavailable   = errors.New("one or more seats are already booked")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingNotPending  = errors.New("booking is not awaiting payment")
	ErrPaymentInvalid     = errors.New("payment details failed validation")
	ErrPaymentInFlight    = errors.New("a payment is already being processed")
)
