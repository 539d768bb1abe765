package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetBanking PaymentMethod = "net_banking"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the identity slice returned by GET /api/auth/user and the
// only user data the checkout flow ever reads.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Trip struct {
	ID            uuid.UUID `json:"id"`
	BusName       string    `json:"bus_name"`
	BusType       string    `json:"bus_type"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	JourneyDate   time.Time `json:"journey_date"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	Fare          int64     `json:"fare"`
}

type Passenger struct {
	Name       string `json:"name" validate:"required,name_length"`
	Age        int    `json:"age" validate:"required,passenger_age"`
	Gender     string `json:"gender" validate:"required,gender"`
	SeatNumber string `json:"seat_number" validate:"required,seat_number"`
}

// BookingDetails is the read-only booking context handed to checkout.
type BookingDetails struct {
	BusName       string      `json:"bus_name"`
	BusType       string      `json:"bus_type"`
	Source        string      `json:"source"`
	Destination   string      `json:"destination"`
	JourneyDate   time.Time   `json:"journey_date"`
	DepartureTime string      `json:"departure_time"`
	ArrivalTime   string      `json:"arrival_time"`
	Passengers    []Passenger `json:"passengers"`
	SelectedSeats []string    `json:"selected_seats"`
	Fare          int64       `json:"fare"`
	TotalAmount   int64       `json:"total_amount"`
}

type BookingRequest struct {
	TripID     uuid.UUID   `json:"trip_id" validate:"required"`
	Passengers []Passenger `json:"passengers" validate:"required,min=1,dive"`
	Seats      []string    `json:"seats" validate:"required,min=1"`
}

type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Trip        Trip          `json:"trip"`
	Passengers  []Passenger   `json:"passengers,omitempty"`
	Status      BookingStatus `json:"status"`
	TotalAmount int64         `json:"total_amount"`
	CreatedAt   time.Time     `json:"created_at"`
}

type AllBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
	Limit    int       `json:"limit"`
	Cursor   string    `json:"cursor"`
}

type GetBookingsRequest struct {
	UserID uuid.UUID
	Cursor string
	Limit  int
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=15"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type PaymentRequest struct {
	BookingID uuid.UUID     `json:"booking_id" validate:"required"`
	Method    PaymentMethod `json:"method" validate:"required,payment_method"`
}

type Payment struct {
	ID        uuid.UUID     `json:"id"`
	BookingID uuid.UUID     `json:"booking_id"`
	Method    PaymentMethod `json:"method"`
	Reference string        `json:"reference"`
	Amount    int64         `json:"amount"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type PaymentReceipt struct {
	Reference string        `json:"reference"`
	BookingID uuid.UUID     `json:"booking_id"`
	Status    BookingStatus `json:"status"`
	Amount    int64         `json:"amount"`
}
