package repository

import (
	"context"
	"fmt"
	"strings"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	err = r.createBookingTx(ctx, tx, booking)
	if err != nil {
		return nil, err
	}

	for i := range booking.Passengers {
		err = r.createPassengerTx(ctx, tx, booking.ID, &booking.Passengers[i])
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrInvalidUUID
	}

	query := `
        SELECT
            B.id, B.user_id, B.status, B.total_amount, B.created_at,
            T.id, T.bus_name, T.bus_type, T.source, T.destination,
            T.journey_date, T.departure_time, T.arrival_time, T.fare
        FROM bookings B
        JOIN trips T ON T.id = B.trip_id
        WHERE B.id = $1
    `
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, models.ErrBookingNotFound
	}

	var booking models.Booking
	err = rows.Scan(
		&booking.ID, &booking.UserID, &booking.Status, &booking.TotalAmount, &booking.CreatedAt,
		&booking.Trip.ID, &booking.Trip.BusName, &booking.Trip.BusType, &booking.Trip.Source, &booking.Trip.Destination,
		&booking.Trip.JourneyDate, &booking.Trip.DepartureTime, &booking.Trip.ArrivalTime, &booking.Trip.Fare,
	)
	if err != nil {
		return nil, err
	}
	rows.Close()

	passengers, err := r.passengersForBookings(ctx, []uuid.UUID{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Passengers = passengers[booking.ID]
	return &booking, nil
}

func (r *BookingRepository) GetBookingsPaginated(ctx context.Context, userID string, afterCursor string, limit int) ([]models.Booking, string, error) {
	query := `
        SELECT
            B.id, B.user_id, B.status, B.total_amount, B.created_at,
            T.id, T.bus_name, T.bus_type, T.source, T.destination,
            T.journey_date, T.departure_time, T.arrival_time, T.fare
        FROM bookings B
        JOIN trips T ON T.id = B.trip_id
    `
	args := []interface{}{userID}
	conditions := []string{"B.user_id = $1"}

	if afterCursor != "" {
		afterTime, afterUUID, err := utils.DecodeCursor(afterCursor)
		if err != nil {
			return nil, "", err
		}
		conditions = append(conditions, "(B.created_at, B.id) > ($2, $3)")
		args = append(args, afterTime, afterUUID)
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY B.created_at, B.id"
	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var bookings []models.Booking
	var lastBooking models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.Status, &booking.TotalAmount, &booking.CreatedAt,
			&booking.Trip.ID, &booking.Trip.BusName, &booking.Trip.BusType, &booking.Trip.Source, &booking.Trip.Destination,
			&booking.Trip.JourneyDate, &booking.Trip.DepartureTime, &booking.Trip.ArrivalTime, &booking.Trip.Fare,
		)
		if err != nil {
			return nil, "", err
		}
		bookings = append(bookings, booking)
		lastBooking = booking
	}
	if err = rows.Err(); err != nil {
		return nil, "", err
	}

	var nextCursor string
	if len(bookings) == limit {
		nextCursor = utils.EncodeCursor(lastBooking.CreatedAt, lastBooking.ID)
	}

	return bookings, nextCursor, nil
}

func (r *BookingRepository) GetTripByID(ctx context.Context, id string) (*models.Trip, error) {
	query := `
        SELECT id, bus_name, bus_type, source, destination,
               journey_date, departure_time, arrival_time, fare
        FROM trips
        WHERE id = $1
    `
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, models.ErrMissingTrip
	}

	var trip models.Trip
	err = rows.Scan(
		&trip.ID, &trip.BusName, &trip.BusType, &trip.Source, &trip.Destination,
		&trip.JourneyDate, &trip.DepartureTime, &trip.ArrivalTime, &trip.Fare,
	)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// TakenSeats lists seat numbers already held by non-cancelled bookings
// on a trip.
func (r *BookingRepository) TakenSeats(ctx context.Context, tripID string) ([]string, error) {
	query := `
        SELECT P.seat_number
        FROM passengers P
        JOIN bookings B ON B.id = P.booking_id
        WHERE B.trip_id = $1 AND B.status <> $2
    `
	rows, err := r.db.Query(ctx, query, tripID, models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

// ConfirmBooking records the payment and moves the booking out of
// PENDING in one transaction.
func (r *BookingRepository) ConfirmBooking(ctx context.Context, payment *models.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	paymentQuery := `
        INSERT INTO payments (id, booking_id, method, reference, amount, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err = tx.Exec(ctx, paymentQuery,
		payment.ID, payment.BookingID, payment.Method, payment.Reference,
		payment.Amount, payment.Status, payment.CreatedAt)
	if err != nil {
		return err
	}

	bookingQuery := `
        UPDATE bookings SET status = $1
        WHERE id = $2 AND status = $3
    `
	tag, err := tx.Exec(ctx, bookingQuery, models.StatusConfirmed, payment.BookingID, models.StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return models.ErrBookingNotPending
	}

	return tx.Commit(ctx)
}

func (r *BookingRepository) createBookingTx(ctx context.Context, tx pgx.Tx, booking *models.Booking) error {
	query := `
        INSERT INTO bookings (id, user_id, trip_id, status, total_amount, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := tx.Exec(ctx, query,
		booking.ID, booking.UserID, booking.Trip.ID, booking.Status,
		booking.TotalAmount, booking.CreatedAt)
	return err
}

func (r *BookingRepository) createPassengerTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, p *models.Passenger) error {
	query := `
        INSERT INTO passengers (id, booking_id, name, age, gender, seat_number)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := tx.Exec(ctx, query, uuid.New(), bookingID, p.Name, p.Age, p.Gender, p.SeatNumber)
	return err
}

func (r *BookingRepository) passengersForBookings(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.Passenger, error) {
	query := `
        SELECT booking_id, name, age, gender, seat_number
        FROM passengers
        WHERE booking_id = ANY($1)
    `
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.Passenger)
	for rows.Next() {
		var bookingID uuid.UUID
		var p models.Passenger
		if err := rows.Scan(&bookingID, &p.Name, &p.Age, &p.Gender, &p.SeatNumber); err != nil {
			return nil, err
		}
		out[bookingID] = append(out[bookingID], p)
	}
	return out, rows.Err()
}
