package ports

import (
	"context"

	models "github.com/swiftbus/api/internal"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	GetBookingsPaginated(ctx context.Context, userID string, afterCursor string, limit int) ([]models.Booking, string, error)
	GetTripByID(ctx context.Context, id string) (*models.Trip, error)
	TakenSeats(ctx context.Context, tripID string) ([]string, error)
	ConfirmBooking(ctx context.Context, payment *models.Payment) error
}

type AuthService interface {
	Register(ctx context.Context, request *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, request *models.LoginRequest) (*models.LoginResponse, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, request *models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, userID uuid.UUID, id string) (*models.Booking, error)
	AllBookings(ctx context.Context, req models.GetBookingsRequest) (*models.AllBookingsResponse, error)
	CapturePayment(ctx context.Context, request *models.PaymentRequest) (*models.PaymentReceipt, error)
}

// TokenStore is the persisted single-slot credential store used by the
// client-side session. Load returns an empty string when no token is
// stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// AuthAPI is the auth-service collaborator as seen from the client side.
type AuthAPI interface {
	FetchUser(ctx context.Context, token string) (*models.Profile, error)
}

// PaymentAPI is the booking/payment collaborator as seen from checkout.
type PaymentAPI interface {
	Checkout(ctx context.Context, request *models.PaymentRequest) (*models.PaymentReceipt, error)
}
