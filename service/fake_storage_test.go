package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentwheels/pkg/apperror"
	"rentwheels/pkg/models"
	"rentwheels/storage"
)

// fakeStorage is an in-memory storage.IStorage. RunInTx snapshots both
// maps and restores them on error, mirroring transaction rollback.
type fakeStorage struct {
	mu       sync.Mutex
	seq      int
	cars     map[uuid.UUID]*models.Car
	bookings map[uuid.UUID]*models.Booking
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		cars:     map[uuid.UUID]*models.Car{},
		bookings: map[uuid.UUID]*models.Booking{},
	}
}

func (f *fakeStorage) Car() storage.ICarStorage         { return &fakeCarStore{f} }
func (f *fakeStorage) Booking() storage.IBookingStorage { return &fakeBookingStore{f} }
func (f *fakeStorage) Close()                           {}

func (f *fakeStorage) RunInTx(ctx context.Context, fn func(storage.IStorage) error) error {
	f.mu.Lock()
	carsSnap := make(map[uuid.UUID]*models.Car, len(f.cars))
	for k, v := range f.cars {
		c := *v
		carsSnap[k] = &c
	}
	bookingsSnap := make(map[uuid.UUID]*models.Booking, len(f.bookings))
	for k, v := range f.bookings {
		b := *v
		bookingsSnap[k] = &b
	}
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.cars = carsSnap
		f.bookings = bookingsSnap
		f.mu.Unlock()
		return err
	}
	return nil
}

// nextTime hands out strictly increasing timestamps so ordering
// assertions are deterministic.
func (f *fakeStorage) nextTime() time.Time {
	f.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)
}

type fakeCarStore struct{ f *fakeStorage }

func (s *fakeCarStore) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	c := *car
	c.ID = uuid.New()
	c.CreatedAt = s.f.nextTime()
	s.f.cars[c.ID] = &c
	out := c
	return &out, nil
}

func (s *fakeCarStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	car, ok := s.f.cars[id]
	if !ok {
		return nil, apperror.NewNotFound("Car not found")
	}
	out := *car
	return &out, nil
}

func (s *fakeCarStore) GetAll(ctx context.Context, providerEmail string, newestFirst bool) ([]*models.Car, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var cars []*models.Car
	for _, car := range s.f.cars {
		if providerEmail != "" && car.ProviderEmail != providerEmail {
			continue
		}
		c := *car
		cars = append(cars, &c)
	}
	sort.Slice(cars, func(i, j int) bool {
		if newestFirst {
			return cars[i].CreatedAt.After(cars[j].CreatedAt)
		}
		return cars[i].CreatedAt.Before(cars[j].CreatedAt)
	})
	return cars, nil
}

func (s *fakeCarStore) GetLatest(ctx context.Context, limit int) ([]*models.Car, error) {
	cars, _ := s.GetAll(ctx, "", true)
	if len(cars) > limit {
		cars = cars[:limit]
	}
	return cars, nil
}

func (s *fakeCarStore) Search(ctx context.Context, text string) ([]*models.Car, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	needle := strings.ToLower(text)
	var cars []*models.Car
	for _, car := range s.f.cars {
		if strings.Contains(strings.ToLower(car.CarName), needle) {
			c := *car
			cars = append(cars, &c)
		}
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].CreatedAt.After(cars[j].CreatedAt) })
	return cars, nil
}

func (s *fakeCarStore) Update(ctx context.Context, id uuid.UUID, patch *models.CarPatch) (*models.Car, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	car, ok := s.f.cars[id]
	if !ok {
		return nil, apperror.NewNotFound("Car not found")
	}
	if patch != nil {
		if patch.CarName != nil {
			car.CarName = *patch.CarName
		}
		if patch.PricePerDay != nil {
			car.PricePerDay = *patch.PricePerDay
		}
		if patch.Status != nil {
			car.Status = *patch.Status
		}
		if patch.Description != nil {
			car.Description = patch.Description
		}
		if patch.ImageURL != nil {
			car.ImageURL = patch.ImageURL
		}
		if len(patch.Details) > 0 {
			if car.Details == nil {
				car.Details = map[string]interface{}{}
			}
			for k, v := range patch.Details {
				car.Details[k] = v
			}
		}
	}
	out := *car
	return &out, nil
}

func (s *fakeCarStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	car, ok := s.f.cars[id]
	if !ok {
		return apperror.NewNotFound("Car not found")
	}
	car.Status = status
	return nil
}

func (s *fakeCarStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.cars[id]; !ok {
		return apperror.NewNotFound("Car not found")
	}
	delete(s.f.cars, id)
	return nil
}

type fakeBookingStore struct{ f *fakeStorage }

func (s *fakeBookingStore) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	b := *booking
	b.ID = uuid.New()
	b.CreatedAt = s.f.nextTime()
	s.f.bookings[b.ID] = &b
	out := b
	return &out, nil
}

func (s *fakeBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	booking, ok := s.f.bookings[id]
	if !ok {
		return nil, apperror.NewNotFound("Booking not found")
	}
	out := *booking
	return &out, nil
}

func (s *fakeBookingStore) GetByUserEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var bookings []*models.Booking
	for _, booking := range s.f.bookings {
		if booking.UserEmail == email {
			b := *booking
			bookings = append(bookings, &b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
	return bookings, nil
}

func (s *fakeBookingStore) Update(ctx context.Context, id uuid.UUID, patch *models.BookingPatch) (*models.Booking, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	booking, ok := s.f.bookings[id]
	if !ok {
		return nil, apperror.NewNotFound("Booking not found")
	}
	if patch != nil {
		if patch.StartDate != nil {
			booking.StartDate = patch.StartDate
		}
		if patch.EndDate != nil {
			booking.EndDate = patch.EndDate
		}
		if patch.TotalPrice != nil {
			booking.TotalPrice = *patch.TotalPrice
		}
		if len(patch.Details) > 0 {
			if booking.Details == nil {
				booking.Details = map[string]interface{}{}
			}
			for k, v := range patch.Details {
				booking.Details[k] = v
			}
		}
	}
	out := *booking
	return &out, nil
}

func (s *fakeBookingStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.bookings[id]; !ok {
		return apperror.NewNotFound("Booking not found")
	}
	delete(s.f.bookings, id)
	return nil
}

func (s *fakeBookingStore) CountByCar(ctx context.Context, carID uuid.UUID) (int, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	count := 0
	for _, booking := range s.f.bookings {
		if booking.CarID != nil && *booking.CarID == carID {
			count++
		}
	}
	return count, nil
}
