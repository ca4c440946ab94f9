package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rentwheels/pkg/apperror"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/models"
	"rentwheels/storage"
)

const bookingColumns = "id, car_id, user_email, start_date, end_date, total_price, details, created_at"

type bookingRepo struct {
	db  DB
	log logger.ILogger
}

func NewBookingRepo(db DB, log logger.ILogger) storage.IBookingStorage {
	return &bookingRepo{db: db, log: log}
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (car_id, user_email, start_date, end_date, total_price, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	details, err := marshalDetails(booking.Details)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, query,
		booking.CarID,
		booking.UserEmail,
		booking.StartDate,
		booking.EndDate,
		booking.TotalPrice,
		details,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		r.log.Error("failed to create booking", logger.Error(err))
		return nil, err
	}

	return booking, nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id = $1", bookingColumns)

	booking, err := readBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Booking not found")
		}
		r.log.Error("failed to get booking by id", logger.String("id", id.String()), logger.Error(err))
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepo) GetByUserEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE user_email = $1 ORDER BY created_at DESC", bookingColumns)

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		r.log.Error("failed to query bookings", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := readBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) Update(ctx context.Context, id uuid.UUID, patch *models.BookingPatch) (*models.Booking, error) {
	if patch == nil || patch.Empty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	var args []any
	add := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if patch.StartDate != nil {
		add("start_date = $%d", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date = $%d", *patch.EndDate)
	}
	if patch.TotalPrice != nil {
		add("total_price = $%d", *patch.TotalPrice)
	}
	if len(patch.Details) > 0 {
		details, err := json.Marshal(patch.Details)
		if err != nil {
			return nil, err
		}
		add("details = details || $%d::jsonb", details)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), bookingColumns)

	booking, err := readBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Booking not found")
		}
		r.log.Error("failed to update booking", logger.String("id", id.String()), logger.Error(err))
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, "DELETE FROM bookings WHERE id = $1", id)
	if err != nil {
		r.log.Error("failed to delete booking", logger.String("id", id.String()), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("Booking not found")
	}
	return nil
}

func (r *bookingRepo) CountByCar(ctx context.Context, carID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM bookings WHERE car_id = $1", carID).Scan(&count)
	if err != nil {
		r.log.Error("failed to count bookings for car", logger.String("car_id", carID.String()), logger.Error(err))
		return 0, err
	}
	return count, nil
}

func readBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	var details []byte
	err := row.Scan(
		&b.ID,
		&b.CarID,
		&b.UserEmail,
		&b.StartDate,
		&b.EndDate,
		&b.TotalPrice,
		&details,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &b.Details); err != nil {
			return nil, err
		}
	}
	return &b, nil
}
