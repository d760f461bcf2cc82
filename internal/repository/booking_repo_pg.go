package repository

import (
	"context"
	"errors"

	"github.com/aerovia/aerovia/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// CreateConfirmed runs the commit transaction: seat check-and-decrement,
	// booking insert and passenger inserts, all-or-nothing.
	CreateConfirmed(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, []domain.Passenger, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, pnr string, status domain.BookingStatus) (*domain.Booking, error)
	// ReplaceSeats clears every seat on the booking and assigns seats[i]
	// to passenger i in creation order, in one transaction.
	ReplaceSeats(ctx context.Context, bookingID int64, seats []string) error
	// Cancel flips the booking to CANCELLED and restores its seats to the
	// flight in one transaction. Bookings are never deleted, so PNRs are
	// never reused.
	Cancel(ctx context.Context, pnr string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_id, pnr, status, passenger_count, created_at, updated_at`

func (r *PGBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Seat check and decrement are one statement; the row lock serializes
	// concurrent commits against the same flight.
	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now()
		WHERE id=$1 AND available_seats >= $2`, booking.FlightID, booking.PassengerCount)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrInsufficientSeats
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, pnr, status, passenger_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`, booking.UserID, booking.FlightID, booking.PNR, booking.Status, booking.PassengerCount).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		if isPNRConflict(err) {
			return domain.ErrPNRTaken
		}
		return err
	}

	for i := range passengers {
		p := &passengers[i]
		p.BookingID = booking.ID
		if err := tx.QueryRow(ctx, `INSERT INTO passengers (booking_id, first_name, last_name, age, gender, passport)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			RETURNING id`, p.BookingID, p.FirstName, p.LastName, p.Age, p.Gender, p.Passport).Scan(&p.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, []domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1`, pnr)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrBookingNotFound
		}
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, booking_id, first_name, last_name, age, gender, COALESCE(passport, ''), COALESCE(seat_number, '')
		FROM passengers WHERE booking_id=$1 ORDER BY id`, b.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0, b.PassengerCount)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.BookingID, &p.FirstName, &p.LastName, &p.Age, &p.Gender, &p.Passport, &p.SeatNumber); err != nil {
			return nil, nil, err
		}
		passengers = append(passengers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return &b, passengers, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, pnr string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE pnr=$2 RETURNING `+bookingColumns, status, pnr)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ReplaceSeats(ctx context.Context, bookingID int64, seats []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE passengers SET seat_number = NULL WHERE booking_id=$1`, bookingID); err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `SELECT id FROM passengers WHERE booking_id=$1 ORDER BY id`, bookingID)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(seats))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(seats) > len(ids) {
		return domain.ErrInvalidSeatMap
	}

	for i, seat := range seats {
		if _, err := tx.Exec(ctx, `UPDATE passengers SET seat_number=$1 WHERE id=$2`, seat, ids[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) Cancel(ctx context.Context, pnr string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE pnr=$2 AND status <> $1
		RETURNING `+bookingColumns, domain.BookingStatusCancelled, pnr)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	// Restore exactly what the commit consumed.
	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $2, updated_at = now()
		WHERE id=$1`, b.FlightID, b.PassengerCount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.PNR, &b.Status, &b.PassengerCount, &b.CreatedAt, &b.UpdatedAt)
}

func isPNRConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "bookings_pnr_key"
}

var _ BookingRepository = (*PGBookingRepository)(nil)
