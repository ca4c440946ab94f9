package service

import (
	"rentwheels/config"
	"rentwheels/pkg/logger"
	"rentwheels/storage"
)

type IServiceManager interface {
	Car() CarService
	Booking() BookingService
}

type service struct {
	carService     CarService
	bookingService BookingService
}

func New(stg storage.IStorage, cfg config.Config, log logger.ILogger) IServiceManager {
	return &service{
		carService:     NewCarService(stg, cfg, log),
		bookingService: NewBookingService(stg, log),
	}
}

func (s *service) Car() CarService {
	return s.carService
}

func (s *service) Booking() BookingService {
	return s.bookingService
}
