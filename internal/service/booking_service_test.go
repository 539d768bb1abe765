package service_test

import (
	"context"
	"testing"
	"time"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/mocks"
	"github.com/swiftbus/api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validBookingRequest(tripID uuid.UUID) *models.BookingRequest {
	return &models.BookingRequest{
		TripID: tripID,
		Passengers: []models.Passenger{
			{Name: "Asha Rao", Age: 30, Gender: "female", SeatNumber: "A1"},
			{Name: "Ravi Rao", Age: 34, Gender: "male", SeatNumber: "A2"},
		},
		Seats: []string{"A1", "A2"},
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tripID := uuid.New()
	trip := &models.Trip{
		ID:          tripID,
		BusName:     "Night Rider",
		Source:      "Pune",
		Destination: "Mumbai",
		JourneyDate: time.Now().Add(48 * time.Hour),
		Fare:        450,
	}

	t.Run("creates pending booking with fare times seats", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		var saved *models.Booking
		repo.On("GetTripByID", ctx, tripID.String()).Return(trip, nil)
		repo.On("TakenSeats", ctx, tripID.String()).Return([]string{"B1"}, nil)
		repo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*models.Booking)
			}).
			Return(&models.Booking{}, nil)

		_, err := svc.CreateBooking(ctx, userID, validBookingRequest(tripID))
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, models.StatusPending, saved.Status)
		assert.Equal(t, userID, saved.UserID)
		assert.Equal(t, int64(900), saved.TotalAmount)
		assert.Len(t, saved.Passengers, 2)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty passenger list", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		_, err := svc.CreateBooking(ctx, userID, &models.BookingRequest{TripID: tripID, Seats: []string{"A1"}})
		assert.ErrorIs(t, err, models.ErrNoPassengers)
	})

	t.Run("rejects seat count mismatch", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		req := validBookingRequest(tripID)
		req.Seats = []string{"A1"}
		_, err := svc.CreateBooking(ctx, userID, req)
		assert.ErrorIs(t, err, models.ErrSeatCountMismatch)
	})

	t.Run("rejects passenger assigned to unselected seat", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		req := validBookingRequest(tripID)
		req.Passengers[1].SeatNumber = "C9"
		_, err := svc.CreateBooking(ctx, userID, req)
		assert.ErrorIs(t, err, models.ErrSeatAssignment)
	})

	t.Run("rejects unknown trip", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		repo.On("GetTripByID", ctx, tripID.String()).Return(nil, models.ErrMissingTrip)

		_, err := svc.CreateBooking(ctx, userID, validBookingRequest(tripID))
		assert.ErrorIs(t, err, models.ErrMissingTrip)
	})

	t.Run("rejects already taken seats", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		repo.On("GetTripByID", ctx, tripID.String()).Return(trip, nil)
		repo.On("TakenSeats", ctx, tripID.String()).Return([]string{"A2"}, nil)

		_, err := svc.CreateBooking(ctx, userID, validBookingRequest(tripID))
		assert.ErrorIs(t, err, models.ErrSeatsUnavailable)
		repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bookingID := uuid.New()

	t.Run("returns owned booking", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		repo.On("GetBookingByID", ctx, bookingID.String()).Return(&models.Booking{
			ID:     bookingID,
			UserID: userID,
			Status: models.StatusPending,
		}, nil)

		booking, err := svc.GetBooking(ctx, userID, bookingID.String())
		require.NoError(t, err)
		assert.Equal(t, bookingID, booking.ID)
	})

	t.Run("hides other users' bookings", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		repo.On("GetBookingByID", ctx, bookingID.String()).Return(&models.Booking{
			ID:     bookingID,
			UserID: uuid.New(),
		}, nil)

		_, err := svc.GetBooking(ctx, userID, bookingID.String())
		assert.ErrorIs(t, err, models.ErrBookingNotFound)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		_, err := svc.GetBooking(ctx, userID, "not-a-uuid")
		assert.ErrorIs(t, err, models.ErrInvalidUUID)
		repo.AssertNotCalled(t, "GetBookingByID", mock.Anything, mock.Anything)
	})
}

func TestAllBookings(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(mocks.MockBookingRepository)
	svc := service.NewBookingService(repo)

	repo.On("GetBookingsPaginated", ctx, userID.String(), "", 10).
		Return([]models.Booking{{ID: uuid.New()}}, "next-cursor", nil)

	ans, err := svc.AllBookings(ctx, models.GetBookingsRequest{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, ans.Bookings, 1)
	assert.Equal(t, 10, ans.Limit)
	assert.Equal(t, "next-cursor", ans.Cursor)
}

func TestCapturePayment(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	t.Run("confirms pending booking", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		repo.On("GetBookingByID", ctx, bookingID.String()).Return(&models.Booking{
			ID:          bookingID,
			Status:      models.StatusPending,
			TotalAmount: 900,
		}, nil)
		repo.On("ConfirmBooking", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

		receipt, err := svc.CapturePayment(ctx, &models.PaymentRequest{
			BookingID: bookingID,
			Method:    models.MethodCreditCard,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, receipt.Status)
		assert.Equal(t, int64(900), receipt.Amount)
		assert.NotEmpty(t, receipt.Reference)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-pending booking", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		repo.On("GetBookingByID", ctx, bookingID.String()).Return(&models.Booking{
			ID:     bookingID,
			Status: models.StatusConfirmed,
		}, nil)

		_, err := svc.CapturePayment(ctx, &models.PaymentRequest{
			BookingID: bookingID,
			Method:    models.MethodUPI,
		})
		assert.ErrorIs(t, err, models.ErrBookingNotPending)
		repo.AssertNotCalled(t, "ConfirmBooking", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown booking", func(t *testing.T) {
		repo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(repo)

		repo.On("GetBookingByID", ctx, bookingID.String()).Return(nil, models.ErrBookingNotFound)

		_, err := svc.CapturePayment(ctx, &models.PaymentRequest{
			BookingID: bookingID,
			Method:    models.MethodUPI,
		})
		assert.ErrorIs(t, err, models.ErrBookingNotFound)
	})
}
