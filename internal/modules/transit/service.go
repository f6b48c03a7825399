// README: Transit service: route planning plus network administration.
package transit

import (
	"context"
	"errors"
	"strings"

	"cabway/internal/types"
)

var (
	ErrNotFound      = errors.New("location not found")
	ErrRouteNotFound = errors.New("route not found")
	ErrNoRoute       = errors.New("no valid route found")
	ErrValidation    = errors.New("invalid transit input")
	ErrDuplicateName = errors.New("location name already in use")
	ErrReferenced    = errors.New("location is referenced and cannot be deleted")
)

// BookingRefs answers whether bookings still reference a location.
// Implemented by the booking store; wired in at process start.
type BookingRefs interface {
	ExistsForLocation(ctx context.Context, locationID types.ID) (bool, error)
}

type Service struct {
	store Store
	cache GraphCache
	refs  BookingRefs
}

func NewService(store Store, cache GraphCache, refs BookingRefs) *Service {
	if cache == nil {
		cache = NopGraphCache{}
	}
	return &Service{store: store, cache: cache, refs: refs}
}

// Graph returns the current network graph, from cache when warm.
func (s *Service) Graph(ctx context.Context) (Graph, error) {
	if g, ok := s.cache.Get(ctx); ok {
		return g, nil
	}
	routes, err := s.store.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	g := BuildGraph(routes)
	for _, loc := range locations {
		g.AddNode(loc.Name)
	}
	s.cache.Set(ctx, g)
	return g, nil
}

// PlanRoute resolves both endpoints and runs the shortest-path solver.
// Returns ErrNotFound for an unknown endpoint and ErrNoRoute when the
// destination is unreachable.
func (s *Service) PlanRoute(ctx context.Context, sourceID, destinationID types.ID) ([]string, int, error) {
	source, err := s.store.GetLocation(ctx, sourceID)
	if err != nil {
		return nil, 0, err
	}
	destination, err := s.store.GetLocation(ctx, destinationID)
	if err != nil {
		return nil, 0, err
	}

	g, err := s.Graph(ctx)
	if err != nil {
		return nil, 0, err
	}

	path, duration, ok := ShortestPath(g, source.Name, destination.Name)
	if !ok {
		return nil, 0, ErrNoRoute
	}
	return path, duration, nil
}

func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	return s.store.ListLocations(ctx)
}

func (s *Service) GetLocation(ctx context.Context, id types.ID) (Location, error) {
	return s.store.GetLocation(ctx, id)
}

func (s *Service) CreateLocation(ctx context.Context, name string) (Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Location{}, ErrValidation
	}
	loc := Location{ID: types.NewID(), Name: name}
	if err := s.store.CreateLocation(ctx, loc); err != nil {
		return Location{}, err
	}
	s.cache.Invalidate(ctx)
	return loc, nil
}

func (s *Service) RenameLocation(ctx context.Context, id types.ID, name string) (Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Location{}, ErrValidation
	}
	loc := Location{ID: id, Name: name}
	ok, err := s.store.UpdateLocation(ctx, loc)
	if err != nil {
		return Location{}, err
	}
	if !ok {
		return Location{}, ErrNotFound
	}
	s.cache.Invalidate(ctx)
	return loc, nil
}

// DeleteLocation refuses to remove a location still referenced by a
// route or a booking: bookings are a permanent historical record and
// routes would be left dangling.
func (s *Service) DeleteLocation(ctx context.Context, id types.ID) error {
	referenced, err := s.store.RoutesExistForLocation(ctx, id)
	if err != nil {
		return err
	}
	if !referenced && s.refs != nil {
		referenced, err = s.refs.ExistsForLocation(ctx, id)
		if err != nil {
			return err
		}
	}
	if referenced {
		return ErrReferenced
	}
	ok, err := s.store.DeleteLocation(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) Routes(ctx context.Context) ([]Route, error) {
	return s.store.ListRoutes(ctx)
}

func (s *Service) CreateRoute(ctx context.Context, fromID, toID types.ID, durationMin int) (Route, error) {
	if durationMin <= 0 || fromID == toID {
		return Route{}, ErrValidation
	}
	from, err := s.store.GetLocation(ctx, fromID)
	if err != nil {
		return Route{}, err
	}
	to, err := s.store.GetLocation(ctx, toID)
	if err != nil {
		return Route{}, err
	}
	r := Route{
		ID:          types.NewID(),
		FromID:      fromID,
		ToID:        toID,
		FromName:    from.Name,
		ToName:      to.Name,
		DurationMin: durationMin,
	}
	if err := s.store.CreateRoute(ctx, r); err != nil {
		return Route{}, err
	}
	s.cache.Invalidate(ctx)
	return r, nil
}

func (s *Service) UpdateRoute(ctx context.Context, id, fromID, toID types.ID, durationMin int) (Route, error) {
	if durationMin <= 0 || fromID == toID {
		return Route{}, ErrValidation
	}
	r := Route{ID: id, FromID: fromID, ToID: toID, DurationMin: durationMin}
	ok, err := s.store.UpdateRoute(ctx, r)
	if err != nil {
		return Route{}, err
	}
	if !ok {
		return Route{}, ErrRouteNotFound
	}
	s.cache.Invalidate(ctx)
	return s.store.GetRoute(ctx, id)
}

func (s *Service) DeleteRoute(ctx context.Context, id types.ID) error {
	ok, err := s.store.DeleteRoute(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRouteNotFound
	}
	s.cache.Invalidate(ctx)
	return nil
}
