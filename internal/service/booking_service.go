package service

import (
	"context"
	"fmt"
	"time"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/ports"
	"github.com/google/uuid"
)

type bookingService struct {
	repo ports.BookingRepository
}

func NewBookingService(repo ports.BookingRepository) *bookingService {
	return &bookingService{repo: repo}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, request *models.BookingRequest) (*models.Booking, error) {
	if len(request.Passengers) == 0 {
		return nil, models.ErrNoPassengers
	}
	if len(request.Passengers) != len(request.Seats) {
		return nil, models.ErrSeatCountMismatch
	}

	selected := make(map[string]bool, len(request.Seats))
	for _, seat := range request.Seats {
		selected[seat] = true
	}
	for _, p := range request.Passengers {
		if !selected[p.SeatNumber] {
			return nil, models.ErrSeatAssignment
		}
	}

	trip, err := s.repo.GetTripByID(ctx, request.TripID.String())
	if err != nil {
		return nil, fmt.Errorf("invalid trip: %w", err)
	}

	taken, err := s.repo.TakenSeats(ctx, trip.ID.String())
	if err != nil {
		return nil, fmt.Errorf("error checking seat availability: %w", err)
	}
	for _, seat := range taken {
		if selected[seat] {
			return nil, models.ErrSeatsUnavailable
		}
	}

	booking := &models.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		Trip:        *trip,
		Passengers:  request.Passengers,
		Status:      models.StatusPending,
		TotalAmount: trip.Fare * int64(len(request.Seats)),
		CreatedAt:   time.Now().UTC(),
	}

	savedBooking, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}
	return savedBooking, nil
}

// GetBooking returns a single booking, scoped to its owner.
func (s *bookingService) GetBooking(ctx context.Context, userID uuid.UUID, id string) (*models.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrInvalidUUID
	}

	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) AllBookings(ctx context.Context, req models.GetBookingsRequest) (*models.AllBookingsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	bookings, nextCursor, err := s.repo.GetBookingsPaginated(ctx, req.UserID.String(), req.Cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}

	return &models.AllBookingsResponse{
		Bookings: bookings,
		Limit:    limit,
		Cursor:   nextCursor,
	}, nil
}

// CapturePayment simulates the gateway charge and confirms the booking.
// A real gateway integration would slot in before ConfirmBooking.
func (s *bookingService) CapturePayment(ctx context.Context, request *models.PaymentRequest) (*models.PaymentReceipt, error) {
	booking, err := s.repo.GetBookingByID(ctx, request.BookingID.String())
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusPending {
		return nil, models.ErrBookingNotPending
	}

	payment := &models.Payment{
		ID:        uuid.New(),
		BookingID: booking.ID,
		Method:    request.Method,
		Reference: uuid.NewString(),
		Amount:    booking.TotalAmount,
		Status:    "SUCCESS",
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.ConfirmBooking(ctx, payment); err != nil {
		return nil, fmt.Errorf("error confirming booking: %w", err)
	}

	return &models.PaymentReceipt{
		Reference: payment.Reference,
		BookingID: booking.ID,
		Status:    models.StatusConfirmed,
		Amount:    payment.Amount,
	}, nil
}
