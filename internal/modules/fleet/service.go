// README: Fleet service: roster administration and driver cab management.
package fleet

import (
	"context"
	"errors"
	"strings"

	"cabway/internal/types"
)

var (
	ErrNotFound   = errors.New("cab not found")
	ErrValidation = errors.New("invalid cab input")
	ErrReferenced = errors.New("cab has bookings and cannot be deleted")
	ErrHasCab     = errors.New("driver already has a cab")
)

// BookingRefs answers whether bookings reference a cab. Implemented by
// the booking store; wired in at process start.
type BookingRefs interface {
	ExistsForCab(ctx context.Context, cabID types.ID) (bool, error)
}

type Service struct {
	store Store
	refs  BookingRefs
}

func NewService(store Store, refs BookingRefs) *Service {
	return &Service{store: store, refs: refs}
}

func (s *Service) List(ctx context.Context) ([]Cab, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id types.ID) (Cab, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, pricePerMinute float64, cabType CabType, driverID types.ID) (Cab, error) {
	name = strings.TrimSpace(name)
	if name == "" || pricePerMinute <= 0 {
		return Cab{}, ErrValidation
	}
	if cabType == "" {
		cabType = CabTypeUberX
	}
	if !cabType.Valid() {
		return Cab{}, ErrValidation
	}
	cab := Cab{
		ID:             types.NewID(),
		Name:           name,
		PricePerMinute: pricePerMinute,
		Type:           cabType,
		DriverID:       driverID,
	}
	if err := s.store.Create(ctx, cab); err != nil {
		return Cab{}, err
	}
	return cab, nil
}

// Update changes roster data for an existing cab. Price changes do not
// touch existing bookings: cost is fixed at booking creation.
func (s *Service) Update(ctx context.Context, id types.ID, name string, pricePerMinute float64, cabType CabType) (Cab, error) {
	name = strings.TrimSpace(name)
	if name == "" || pricePerMinute <= 0 || !cabType.Valid() {
		return Cab{}, ErrValidation
	}
	cab := Cab{ID: id, Name: name, PricePerMinute: pricePerMinute, Type: cabType}
	ok, err := s.store.Update(ctx, cab)
	if err != nil {
		return Cab{}, err
	}
	if !ok {
		return Cab{}, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Delete refuses to remove a cab that any booking references: bookings
// are a permanent historical record.
func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if s.refs != nil {
		referenced, err := s.refs.ExistsForCab(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return ErrReferenced
		}
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// GetByDriver returns the cab owned by a driver.
func (s *Service) GetByDriver(ctx context.Context, driverID types.ID) (Cab, error) {
	return s.store.GetByDriver(ctx, driverID)
}

// RegisterForDriver creates the single cab owned by a driver.
func (s *Service) RegisterForDriver(ctx context.Context, driverID types.ID, name string, pricePerMinute float64, cabType CabType) (Cab, error) {
	if _, err := s.store.GetByDriver(ctx, driverID); err == nil {
		return Cab{}, ErrHasCab
	} else if !errors.Is(err, ErrNotFound) {
		return Cab{}, err
	}
	return s.Create(ctx, name, pricePerMinute, cabType, driverID)
}

// UpdateForDriver edits the cab owned by a driver.
func (s *Service) UpdateForDriver(ctx context.Context, driverID types.ID, name string, pricePerMinute float64, cabType CabType) (Cab, error) {
	cab, err := s.store.GetByDriver(ctx, driverID)
	if err != nil {
		return Cab{}, err
	}
	if cabType == "" {
		cabType = cab.Type
	}
	return s.Update(ctx, cab.ID, name, pricePerMinute, cabType)
}
