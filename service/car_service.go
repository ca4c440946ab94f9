package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentwheels/config"
	"rentwheels/pkg/apperror"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/models"
	"rentwheels/storage"
)

type CarService interface {
	AddCar(ctx context.Context, providerEmail string, car *models.Car) (*models.Car, error)
	GetCars(ctx context.Context, providerEmail string) ([]*models.Car, error)
	GetLatestCars(ctx context.Context) ([]*models.Car, error)
	SearchCars(ctx context.Context, text string) ([]*models.Car, error)
	GetCar(ctx context.Context, id string) (*models.Car, error)
	UpdateCar(ctx context.Context, id string, patch *models.CarPatch) (*models.Car, error)
	UpdateCarStatus(ctx context.Context, id, status string) error
	DeleteCar(ctx context.Context, id string) error
}

type carService struct {
	stg storage.IStorage
	cfg config.Config
	log logger.ILogger
}

func NewCarService(stg storage.IStorage, cfg config.Config, log logger.ILogger) CarService {
	return &carService{stg: stg, cfg: cfg, log: log}
}

func (s *carService) AddCar(ctx context.Context, providerEmail string, car *models.Car) (*models.Car, error) {
	// The verified identity owns the listing, whatever the payload said.
	car.ID = uuid.Nil
	car.ProviderEmail = providerEmail
	if car.Status == "" {
		car.Status = models.StatusAvailable
	}
	if !models.ValidStatus(car.Status) {
		return nil, apperror.NewBadRequest(fmt.Sprintf("Invalid status %q", car.Status))
	}
	return s.stg.Car().Create(ctx, car)
}

func (s *carService) GetCars(ctx context.Context, providerEmail string) ([]*models.Car, error) {
	newestFirst := s.cfg.CarsSortOrder != "asc"
	return s.stg.Car().GetAll(ctx, providerEmail, newestFirst)
}

func (s *carService) GetLatestCars(ctx context.Context) ([]*models.Car, error) {
	limit := s.cfg.LatestCarsLimit
	if limit <= 0 {
		limit = 6
	}
	return s.stg.Car().GetLatest(ctx, limit)
}

func (s *carService) SearchCars(ctx context.Context, text string) ([]*models.Car, error) {
	// Empty search text means no results, not the whole catalog.
	if text == "" {
		return []*models.Car{}, nil
	}
	return s.stg.Car().Search(ctx, text)
}

func (s *carService) GetCar(ctx context.Context, id string) (*models.Car, error) {
	carID, err := parseCarID(id)
	if err != nil {
		return nil, err
	}
	return s.stg.Car().GetByID(ctx, carID)
}

func (s *carService) UpdateCar(ctx context.Context, id string, patch *models.CarPatch) (*models.Car, error) {
	carID, err := parseCarID(id)
	if err != nil {
		return nil, err
	}
	if patch != nil && patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return nil, apperror.NewBadRequest(fmt.Sprintf("Invalid status %q", *patch.Status))
	}
	return s.stg.Car().Update(ctx, carID, patch)
}

// UpdateCarStatus is the provider's direct status edit, the escape hatch
// for a stuck availability state.
func (s *carService) UpdateCarStatus(ctx context.Context, id, status string) error {
	carID, err := parseCarID(id)
	if err != nil {
		return err
	}
	if !models.ValidStatus(status) {
		return apperror.NewBadRequest(fmt.Sprintf("Invalid status %q", status))
	}
	return s.stg.Car().UpdateStatus(ctx, carID, status)
}

func (s *carService) DeleteCar(ctx context.Context, id string) error {
	carID, err := parseCarID(id)
	if err != nil {
		return err
	}
	return s.stg.RunInTx(ctx, func(tx storage.IStorage) error {
		count, err := tx.Booking().CountByCar(ctx, carID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.NewConflict("Car has active bookings")
		}
		return tx.Car().Delete(ctx, carID)
	})
}

func parseCarID(id string) (uuid.UUID, error) {
	carID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NewInvalidID("Invalid car ID")
	}
	return carID, nil
}
