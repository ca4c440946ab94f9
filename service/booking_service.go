package service

import (
	"context"

	"github.com/google/uuid"

	"rentwheels/pkg/apperror"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/models"
	"rentwheels/storage"
)

// BookingService is the booking coordinator: it owns the rule that a
// car is unavailable exactly while a booking references it. Both
// two-write operations run inside a single storage transaction, so the
// reservation write and the status flip land together or not at all.
type BookingService interface {
	CreateBooking(ctx context.Context, requesterEmail string, booking *models.Booking) (*models.Booking, error)
	ListBookings(ctx context.Context, requesterEmail string) ([]*models.Booking, error)
	UpdateBooking(ctx context.Context, requesterEmail, id string, patch *models.BookingPatch) (*models.Booking, error)
	DeleteBooking(ctx context.Context, requesterEmail, id string) error
}

type bookingService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewBookingService(stg storage.IStorage, log logger.ILogger) BookingService {
	return &bookingService{stg: stg, log: log}
}

func (s *bookingService) CreateBooking(ctx context.Context, requesterEmail string, booking *models.Booking) (*models.Booking, error) {
	// The coordinator is the sole authority on booking identity and
	// ownership; whatever the client sent is discarded.
	booking.ID = uuid.Nil
	booking.UserEmail = requesterEmail

	var created *models.Booking
	err := s.stg.RunInTx(ctx, func(tx storage.IStorage) error {
		var err error
		created, err = tx.Booking().Create(ctx, booking)
		if err != nil {
			return err
		}
		if booking.CarID != nil {
			if err := tx.Car().UpdateStatus(ctx, *booking.CarID, models.StatusUnavailable); err != nil {
				return err
			}
		}
		// Re-read so the caller gets server-assigned fields, not an
		// echo of the input.
		created, err = tx.Booking().GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		s.log.Error("failed to create booking", logger.String("user", requesterEmail), logger.Error(err))
		return nil, err
	}

	return created, nil
}

func (s *bookingService) ListBookings(ctx context.Context, requesterEmail string) ([]*models.Booking, error) {
	return s.stg.Booking().GetByUserEmail(ctx, requesterEmail)
}

func (s *bookingService) UpdateBooking(ctx context.Context, requesterEmail, id string, patch *models.BookingPatch) (*models.Booking, error) {
	bookingID, err := parseBookingID(id)
	if err != nil {
		return nil, err
	}

	var updated *models.Booking
	err = s.stg.RunInTx(ctx, func(tx storage.IStorage) error {
		existing, err := tx.Booking().GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if existing.UserEmail != requesterEmail {
			return apperror.NewForbidden("Unauthorized")
		}
		updated, err = tx.Booking().Update(ctx, bookingID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, requesterEmail, id string) error {
	bookingID, err := parseBookingID(id)
	if err != nil {
		return err
	}

	return s.stg.RunInTx(ctx, func(tx storage.IStorage) error {
		booking, err := tx.Booking().GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		// Ownership gate before any write.
		if booking.UserEmail != requesterEmail {
			return apperror.NewForbidden("Unauthorized")
		}
		if err := tx.Booking().Delete(ctx, bookingID); err != nil {
			return err
		}
		if booking.CarID != nil {
			err := tx.Car().UpdateStatus(ctx, *booking.CarID, models.StatusAvailable)
			if apperror.IsNotFound(err) {
				// The booked car was deleted before the deletion block
				// existed; nothing to flip back.
				s.log.Warning("booked car no longer exists, skipping status reset",
					logger.String("car_id", booking.CarID.String()))
				return nil
			}
			return err
		}
		return nil
	})
}

func parseBookingID(id string) (uuid.UUID, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NewInvalidID("Invalid booking ID")
	}
	return bookingID, nil
}
