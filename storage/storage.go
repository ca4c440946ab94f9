package storage

import (
	"context"

	"github.com/google/uuid"

	"rentwheels/pkg/models"
)

type IStorage interface {
	Car() ICarStorage
	Booking() IBookingStorage
	// RunInTx executes fn against transaction-bound stores; the
	// transaction commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(IStorage) error) error
	Close()
}

type ICarStorage interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	GetAll(ctx context.Context, providerEmail string, newestFirst bool) ([]*models.Car, error)
	GetLatest(ctx context.Context, limit int) ([]*models.Car, error)
	Search(ctx context.Context, text string) ([]*models.Car, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.CarPatch) (*models.Car, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IBookingStorage interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetByUserEmail(ctx context.Context, email string) ([]*models.Booking, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.BookingPatch) (*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCar(ctx context.Context, carID uuid.UUID) (int, error)
}
