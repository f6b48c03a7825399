// README: Transit store interface and PostgreSQL implementation.
package transit

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cabway/internal/types"
)

// Store is the persistence boundary for the transit network. It is an
// explicit interface so services receive their repository as a
// dependency instead of reaching for shared globals.
type Store interface {
	ListLocations(ctx context.Context) ([]Location, error)
	GetLocation(ctx context.Context, id types.ID) (Location, error)
	CreateLocation(ctx context.Context, loc Location) error
	UpdateLocation(ctx context.Context, loc Location) (bool, error)
	DeleteLocation(ctx context.Context, id types.ID) (bool, error)

	ListRoutes(ctx context.Context) ([]Route, error)
	GetRoute(ctx context.Context, id types.ID) (Route, error)
	CreateRoute(ctx context.Context, r Route) error
	UpdateRoute(ctx context.Context, r Route) (bool, error)
	DeleteRoute(ctx context.Context, id types.ID) (bool, error)

	// RoutesExistForLocation reports whether any route references the
	// location as an endpoint. Used by the deletion guard.
	RoutesExistForLocation(ctx context.Context, id types.ID) (bool, error)
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetLocation(ctx context.Context, id types.ID) (Location, error) {
	var loc Location
	err := s.db.QueryRow(ctx, `SELECT id, name FROM locations WHERE id = $1`, string(id)).
		Scan(&loc.ID, &loc.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, ErrNotFound
	}
	return loc, err
}

func (s *PostgresStore) CreateLocation(ctx context.Context, loc Location) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO locations (id, name) VALUES ($1, $2)`,
		string(loc.ID), loc.Name,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

func (s *PostgresStore) UpdateLocation(ctx context.Context, loc Location) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE locations SET name = $1 WHERE id = $2`,
		loc.Name, string(loc.ID),
	)
	if isUniqueViolation(err) {
		return false, ErrDuplicateName
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) DeleteLocation(ctx context.Context, id types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const routeSelect = `
	SELECT r.id, r.from_id, r.to_id, lf.name, lt.name, r.duration_min
	FROM routes r
	JOIN locations lf ON lf.id = r.from_id
	JOIN locations lt ON lt.id = r.to_id`

func (s *PostgresStore) ListRoutes(ctx context.Context) ([]Route, error) {
	rows, err := s.db.Query(ctx, routeSelect+` ORDER BY lf.name, lt.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.FromID, &r.ToID, &r.FromName, &r.ToName, &r.DurationMin); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetRoute(ctx context.Context, id types.ID) (Route, error) {
	var r Route
	err := s.db.QueryRow(ctx, routeSelect+` WHERE r.id = $1`, string(id)).
		Scan(&r.ID, &r.FromID, &r.ToID, &r.FromName, &r.ToName, &r.DurationMin)
	if errors.Is(err, pgx.ErrNoRows) {
		return Route{}, ErrRouteNotFound
	}
	return r, err
}

func (s *PostgresStore) CreateRoute(ctx context.Context, r Route) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO routes (id, from_id, to_id, duration_min) VALUES ($1, $2, $3, $4)`,
		string(r.ID), string(r.FromID), string(r.ToID), r.DurationMin,
	)
	if isForeignKeyViolation(err) {
		return ErrNotFound
	}
	return err
}

func (s *PostgresStore) UpdateRoute(ctx context.Context, r Route) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE routes SET from_id = $1, to_id = $2, duration_min = $3 WHERE id = $4`,
		string(r.FromID), string(r.ToID), r.DurationMin, string(r.ID),
	)
	if isForeignKeyViolation(err) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) DeleteRoute(ctx context.Context, id types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) RoutesExistForLocation(ctx context.Context, id types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM routes WHERE from_id = $1 OR to_id = $1)`,
		string(id),
	).Scan(&exists)
	return exists, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
