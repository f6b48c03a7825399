// README: Fleet store interface and PostgreSQL implementation.
package fleet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cabway/internal/types"
)

// Store is the persistence boundary for the fleet roster.
type Store interface {
	List(ctx context.Context) ([]Cab, error)
	Get(ctx context.Context, id types.ID) (Cab, error)
	GetByDriver(ctx context.Context, driverID types.ID) (Cab, error)
	Create(ctx context.Context, cab Cab) error
	Update(ctx context.Context, cab Cab) (bool, error)
	Delete(ctx context.Context, id types.ID) (bool, error)
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const cabSelect = `SELECT id, name, price_per_minute, cab_type, driver_id FROM cabs`

func (s *PostgresStore) List(ctx context.Context) ([]Cab, error) {
	rows, err := s.db.Query(ctx, cabSelect+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Cab
	for rows.Next() {
		cab, err := scanCab(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cab)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (Cab, error) {
	cab, err := scanCab(s.db.QueryRow(ctx, cabSelect+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Cab{}, ErrNotFound
	}
	return cab, err
}

func (s *PostgresStore) GetByDriver(ctx context.Context, driverID types.ID) (Cab, error) {
	cab, err := scanCab(s.db.QueryRow(ctx, cabSelect+` WHERE driver_id = $1`, string(driverID)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Cab{}, ErrNotFound
	}
	return cab, err
}

func (s *PostgresStore) Create(ctx context.Context, cab Cab) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cabs (id, name, price_per_minute, cab_type, driver_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		string(cab.ID), cab.Name, cab.PricePerMinute, string(cab.Type), string(cab.DriverID),
	)
	return mapCreateError(err)
}

// mapCreateError turns constraint violations on the cabs table into
// domain errors: an unknown driver id breaks the foreign key, a driver
// who already owns a cab trips the partial unique index on driver_id.
func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23503":
		return ErrValidation
	case "23505":
		return ErrHasCab
	}
	return err
}

func (s *PostgresStore) Update(ctx context.Context, cab Cab) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE cabs
		SET name = $1, price_per_minute = $2, cab_type = $3
		WHERE id = $4`,
		cab.Name, cab.PricePerMinute, string(cab.Type), string(cab.ID),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM cabs WHERE id = $1`, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCab(row rowScanner) (Cab, error) {
	var cab Cab
	var driverID *string
	if err := row.Scan(&cab.ID, &cab.Name, &cab.PricePerMinute, &cab.Type, &driverID); err != nil {
		return Cab{}, err
	}
	if driverID != nil {
		cab.DriverID = types.ID(*driverID)
	}
	return cab, nil
}
