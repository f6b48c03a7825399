// README: Booking store interface and PostgreSQL implementation with the
// atomic overlap-check-and-insert used to prevent double-booking.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cabway/internal/types"
)

// Store is the persistence boundary for bookings. Create must perform
// the overlap check and the insert as one atomic unit so that two
// concurrent requests for the same cab and overlapping window cannot
// both succeed.
type Store interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	ListByRequester(ctx context.Context, email string) ([]*Booking, error)
	ListByCab(ctx context.Context, cabID types.ID) ([]*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)

	// UpdateStatus applies a conditional update keyed on the previously
	// observed status and reports whether a row changed.
	UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error)

	// BusyCabIDs returns cabs with a committed (non-cancelled) booking
	// overlapping [start, end).
	BusyCabIDs(ctx context.Context, start, end time.Time) ([]types.ID, error)

	ExistsForCab(ctx context.Context, cabID types.ID) (bool, error)
	ExistsForLocation(ctx context.Context, locationID types.ID) (bool, error)
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create locks the cab row, re-checks the window against every
// committed booking for that cab, and inserts — all inside one
// transaction. Concurrent creates for the same cab serialize on the
// row lock; the loser of an overlapping pair gets ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, b *Booking) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cabID string
	err = tx.QueryRow(ctx, `SELECT id FROM cabs WHERE id = $1 FOR UPDATE`, string(b.CabID)).Scan(&cabID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var busy bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE cab_id = $1
			  AND status <> 'Cancelled'
			  AND start_time < $3
			  AND end_time > $2
		)`, string(b.CabID), b.StartTime, b.EndTime,
	).Scan(&busy)
	if err != nil {
		return err
	}
	if busy {
		return ErrConflict
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (
			id, user_email, source_id, destination_id, cab_id,
			start_time, end_time, cost, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(b.ID), b.UserEmail,
		string(b.SourceID), string(b.DestinationID), string(b.CabID),
		b.StartTime, b.EndTime, b.Cost, string(b.Status),
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const bookingSelect = `
	SELECT b.id, b.user_email,
	       b.source_id, ls.name,
	       b.destination_id, ld.name,
	       b.cab_id, c.name,
	       b.start_time, b.end_time, b.cost, b.status
	FROM bookings b
	JOIN locations ls ON ls.id = b.source_id
	JOIN locations ld ON ld.id = b.destination_id
	JOIN cabs c ON c.id = b.cab_id`

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Booking, error) {
	b, err := scanBooking(s.db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *PostgresStore) ListByRequester(ctx context.Context, email string) ([]*Booking, error) {
	return s.list(ctx, bookingSelect+` WHERE b.user_email = $1 ORDER BY b.start_time DESC`, email)
}

func (s *PostgresStore) ListByCab(ctx context.Context, cabID types.ID) ([]*Booking, error) {
	return s.list(ctx, bookingSelect+` WHERE b.cab_id = $1 ORDER BY b.start_time DESC`, string(cabID))
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*Booking, error) {
	return s.list(ctx, bookingSelect+` ORDER BY b.start_time DESC`)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Booking, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) BusyCabIDs(ctx context.Context, start, end time.Time) ([]types.ID, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT cab_id FROM bookings
		WHERE status <> 'Cancelled'
		  AND start_time < $2
		  AND end_time > $1`, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, types.ID(id))
	}
	return out, rows.Err()
}

func (s *PostgresStore) ExistsForCab(ctx context.Context, cabID types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE cab_id = $1)`, string(cabID),
	).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) ExistsForLocation(ctx context.Context, locationID types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE source_id = $1 OR destination_id = $1)`,
		string(locationID),
	).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.UserEmail,
		&b.SourceID, &b.SourceName,
		&b.DestinationID, &b.DestinationName,
		&b.CabID, &b.CabName,
		&b.StartTime, &b.EndTime, &b.Cost, &b.Status,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
