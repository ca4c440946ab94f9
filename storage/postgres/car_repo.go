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

const carColumns = "id, car_name, provider_email, price_per_day, status, description, image_url, details, created_at"

type carRepo struct {
	db  DB
	log logger.ILogger
}

func NewCarRepo(db DB, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

func (r *carRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	query := `
		INSERT INTO cars (car_name, provider_email, price_per_day, status, description, image_url, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	details, err := marshalDetails(car.Details)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, query,
		car.CarName,
		car.ProviderEmail,
		car.PricePerDay,
		car.Status,
		car.Description,
		car.ImageURL,
		details,
	).Scan(&car.ID, &car.CreatedAt)

	if err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, err
	}

	return car, nil
}

func (r *carRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM cars WHERE id = $1", carColumns)

	car, err := readCar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Car not found")
		}
		r.log.Error("failed to get car by id", logger.String("id", id.String()), logger.Error(err))
		return nil, err
	}
	return car, nil
}

func (r *carRepo) GetAll(ctx context.Context, providerEmail string, newestFirst bool) ([]*models.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM cars", carColumns)
	var args []any
	if providerEmail != "" {
		query += " WHERE provider_email = $1"
		args = append(args, providerEmail)
	}
	if newestFirst {
		query += " ORDER BY created_at DESC"
	} else {
		query += " ORDER BY created_at ASC"
	}
	return r.scanCars(ctx, query, args...)
}

func (r *carRepo) GetLatest(ctx context.Context, limit int) ([]*models.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM cars ORDER BY created_at DESC LIMIT $1", carColumns)
	return r.scanCars(ctx, query, limit)
}

func (r *carRepo) Search(ctx context.Context, text string) ([]*models.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM cars WHERE car_name ILIKE '%%' || $1 || '%%' ORDER BY created_at DESC", carColumns)
	return r.scanCars(ctx, query, escapeLike(text))
}

func (r *carRepo) Update(ctx context.Context, id uuid.UUID, patch *models.CarPatch) (*models.Car, error) {
	// An empty patch is a valid no-op, but the record must still exist.
	if patch == nil || patch.Empty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	var args []any
	add := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if patch.CarName != nil {
		add("car_name = $%d", *patch.CarName)
	}
	if patch.PricePerDay != nil {
		add("price_per_day = $%d", *patch.PricePerDay)
	}
	if patch.Status != nil {
		add("status = $%d", *patch.Status)
	}
	if patch.Description != nil {
		add("description = $%d", *patch.Description)
	}
	if patch.ImageURL != nil {
		add("image_url = $%d", *patch.ImageURL)
	}
	if len(patch.Details) > 0 {
		details, err := json.Marshal(patch.Details)
		if err != nil {
			return nil, err
		}
		add("details = details || $%d::jsonb", details)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE cars SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), carColumns)

	car, err := readCar(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Car not found")
		}
		r.log.Error("failed to update car", logger.String("id", id.String()), logger.Error(err))
		return nil, err
	}
	return car, nil
}

func (r *carRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.Exec(ctx, "UPDATE cars SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		r.log.Error("failed to update car status", logger.String("id", id.String()), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("Car not found")
	}
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, "DELETE FROM cars WHERE id = $1", id)
	if err != nil {
		r.log.Error("failed to delete car", logger.String("id", id.String()), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return apperror.NewNotFound("Car not found")
	}
	return nil
}

func (r *carRepo) scanCars(ctx context.Context, query string, args ...any) ([]*models.Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to query cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		car, err := readCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func readCar(row pgx.Row) (*models.Car, error) {
	var c models.Car
	var details []byte
	err := row.Scan(
		&c.ID,
		&c.CarName,
		&c.ProviderEmail,
		&c.PricePerDay,
		&c.Status,
		&c.Description,
		&c.ImageURL,
		&details,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &c.Details); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func marshalDetails(details map[string]interface{}) ([]byte, error) {
	if details == nil {
		details = map[string]interface{}{}
	}
	return json.Marshal(details)
}

// escapeLike quotes LIKE metacharacters so the needle matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
