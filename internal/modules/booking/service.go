// README: Booking service: availability quotes, booking creation with
// commit-time re-validation, and lazy status reconciliation.
package booking

import (
	"context"
	"errors"
	"time"

	"cabway/internal/modules/fleet"
	"cabway/internal/types"
)

var (
	ErrNotFound       = errors.New("booking not found")
	ErrConflict       = errors.New("cab is not available for the requested time")
	ErrStatusConflict = errors.New("booking was modified concurrently")
	ErrForbidden      = errors.New("not allowed to modify this booking")
	ErrValidation     = errors.New("invalid booking input")
)

// RoutePlanner computes the fastest path across the transit network.
// Implemented by the transit service.
type RoutePlanner interface {
	PlanRoute(ctx context.Context, sourceID, destinationID types.ID) (path []string, durationMin int, err error)
}

// Roster exposes the fleet to the booking engine.
type Roster interface {
	List(ctx context.Context) ([]fleet.Cab, error)
	Get(ctx context.Context, id types.ID) (fleet.Cab, error)
}

// Notifier receives booking-created events. Delivery is fire-and-forget:
// a failed notification never rolls back a booking.
type Notifier interface {
	BookingCreated(b Booking)
}

type Service struct {
	store    Store
	planner  RoutePlanner
	roster   Roster
	notifier Notifier
}

func NewService(store Store, planner RoutePlanner, roster Roster, notifier Notifier) *Service {
	return &Service{store: store, planner: planner, roster: roster, notifier: notifier}
}

// VehicleQuote is one cab offered for a trip, priced for its duration.
type VehicleQuote struct {
	CabID          types.ID
	Name           string
	Type           fleet.CabType
	PricePerMinute float64
	EstimatedCost  float64
}

// Quote lists the trip's path and duration together with every cab free
// for the window [now, now+duration). Advisory only: availability can
// go stale between quote and commit, and Create re-validates.
type Quote struct {
	Path        []string
	DurationMin int
	Vehicles    []VehicleQuote
}

func (s *Service) Quote(ctx context.Context, sourceID, destinationID types.ID) (Quote, error) {
	path, duration, err := s.planner.PlanRoute(ctx, sourceID, destinationID)
	if err != nil {
		return Quote{}, err
	}

	start := time.Now().UTC()
	end := start.Add(time.Duration(duration) * time.Minute)

	cabs, err := s.roster.List(ctx)
	if err != nil {
		return Quote{}, err
	}
	busyIDs, err := s.store.BusyCabIDs(ctx, start, end)
	if err != nil {
		return Quote{}, err
	}
	busy := make(map[types.ID]bool, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = true
	}

	q := Quote{Path: path, DurationMin: duration}
	for _, cab := range cabs {
		if busy[cab.ID] {
			continue
		}
		q.Vehicles = append(q.Vehicles, VehicleQuote{
			CabID:          cab.ID,
			Name:           cab.Name,
			Type:           cab.Type,
			PricePerMinute: cab.PricePerMinute,
			EstimatedCost:  float64(duration) * cab.PricePerMinute,
		})
	}
	return q, nil
}

// Create is the authoritative commit. It never trusts client-supplied
// durations or costs: the path, duration and cost are recomputed here,
// and the overlap check runs atomically with the insert.
func (s *Service) Create(ctx context.Context, requesterEmail string, sourceID, destinationID, cabID types.ID) (*Booking, error) {
	if requesterEmail == "" || sourceID == "" || destinationID == "" || cabID == "" {
		return nil, ErrValidation
	}

	path, duration, err := s.planner.PlanRoute(ctx, sourceID, destinationID)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		// a zero-length trip would violate startTime < endTime
		return nil, ErrValidation
	}

	cab, err := s.roster.Get(ctx, cabID)
	if err != nil {
		return nil, err
	}

	start := time.Now().UTC()
	b := &Booking{
		ID:              types.NewID(),
		UserEmail:       requesterEmail,
		SourceID:        sourceID,
		SourceName:      path[0],
		DestinationID:   destinationID,
		DestinationName: path[len(path)-1],
		CabID:           cab.ID,
		CabName:         cab.Name,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(duration) * time.Minute),
		Cost:            float64(duration) * cab.PricePerMinute,
		Status:          StatusPending,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.BookingCreated(*b)
	}
	return b, nil
}

// Get returns a booking with its status reconciled against the clock.
func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reconcile(ctx, b)
	return b, nil
}

// ListForRequester returns the caller's bookings, newest first, each
// reconciled before it is returned.
func (s *Service) ListForRequester(ctx context.Context, email string) ([]*Booking, error) {
	bookings, err := s.store.ListByRequester(ctx, email)
	if err != nil {
		return nil, err
	}
	s.reconcileAll(ctx, bookings)
	return bookings, nil
}

// ListForCab returns a cab's bookings for its driver, newest first.
func (s *Service) ListForCab(ctx context.Context, cabID types.ID) ([]*Booking, error) {
	bookings, err := s.store.ListByCab(ctx, cabID)
	if err != nil {
		return nil, err
	}
	s.reconcileAll(ctx, bookings)
	return bookings, nil
}

// ListAll returns every booking; administrative surface.
func (s *Service) ListAll(ctx context.Context) ([]*Booking, error) {
	bookings, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.reconcileAll(ctx, bookings)
	return bookings, nil
}

// ChangeStatus applies an explicit status change on behalf of the
// booking's requester or an admin. Reconciliation runs first; when it
// lands on a terminal status the request is silently ignored and the
// reconciled booking is returned ("time wins").
func (s *Service) ChangeStatus(ctx context.Context, id types.ID, requesterEmail string, isAdmin bool, newStatus Status) (*Booking, error) {
	if !newStatus.Valid() {
		return nil, ErrValidation
	}

	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.UserEmail != requesterEmail {
		return nil, ErrForbidden
	}

	s.reconcile(ctx, b)
	if b.Status.Terminal() {
		return b, nil
	}
	if newStatus == b.Status {
		return b, nil
	}

	ok, err := s.store.UpdateStatus(ctx, id, b.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race with a concurrent change
		return nil, ErrStatusConflict
	}
	b.Status = newStatus
	return b, nil
}

func (s *Service) reconcile(ctx context.Context, b *Booking) {
	now := time.Now().UTC()
	derived := Reconcile(b.Status, b.StartTime, b.EndTime, now)
	if derived == b.Status {
		return
	}
	// best effort: a concurrent reader reconciling the same booking is
	// fine, the conditional update keeps exactly one write
	_, _ = s.store.UpdateStatus(ctx, b.ID, b.Status, derived)
	b.Status = derived
}

func (s *Service) reconcileAll(ctx context.Context, bookings []*Booking) {
	for _, b := range bookings {
		s.reconcile(ctx, b)
	}
}
