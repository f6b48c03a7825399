// README: Concurrency tests for booking reservation (run with -race).
package booking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cabway/internal/types"
)

func TestConcurrentCreateSameCabDB(t *testing.T) {
	ctx := context.Background()
	store, db := setupTestStore(t)

	cabID := seedFixtures(t, db)

	start := time.Now().UTC().Truncate(time.Second)
	end := start.Add(30 * time.Minute)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		email := fmt.Sprintf("rider%d@example.com", i)
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			errs <- store.Create(ctx, &Booking{
				ID:            types.NewID(),
				UserEmail:     email,
				SourceID:      "loc_a",
				DestinationID: "loc_b",
				CabID:         cabID,
				StartTime:     start,
				EndTime:       end,
				Cost:          30,
				Status:        StatusPending,
			})
		}(email)
	}

	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 success, got %d", success)
	}

	all, err := store.ListByCab(ctx, cabID)
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(all))
	}
}

func TestCreateAfterCancelDB(t *testing.T) {
	ctx := context.Background()
	store, db := setupTestStore(t)

	cabID := seedFixtures(t, db)

	start := time.Now().UTC().Truncate(time.Second)
	end := start.Add(30 * time.Minute)

	first := &Booking{
		ID: types.NewID(), UserEmail: "first@example.com",
		SourceID: "loc_a", DestinationID: "loc_b", CabID: cabID,
		StartTime: start, EndTime: end, Cost: 30, Status: StatusPending,
	}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("create first booking: %v", err)
	}

	ok, err := store.UpdateStatus(ctx, first.ID, StatusPending, StatusCancelled)
	if err != nil || !ok {
		t.Fatalf("cancel first booking: ok=%v err=%v", ok, err)
	}

	second := &Booking{
		ID: types.NewID(), UserEmail: "second@example.com",
		SourceID: "loc_a", DestinationID: "loc_b", CabID: cabID,
		StartTime: start, EndTime: end, Cost: 30, Status: StatusPending,
	}
	if err := store.Create(ctx, second); err != nil {
		t.Fatalf("expected cancelled booking to free the window: %v", err)
	}
}

func seedFixtures(t *testing.T, db *pgxpool.Pool) types.ID {
	t.Helper()
	ctx := context.Background()

	for _, stmt := range []string{
		`INSERT INTO locations (id, name) VALUES ('loc_a', 'Downtown'), ('loc_b', 'Airport')`,
		`INSERT INTO cabs (id, name, price_per_minute, cab_type) VALUES ('cab_race', 'Race Cab', 1.0, 'uberx')`,
	} {
		if _, err := db.Exec(ctx, stmt); err != nil {
			t.Fatalf("seed fixtures: %v", err)
		}
	}
	return "cab_race"
}

func setupTestStore(t *testing.T) (*PostgresStore, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("CABWAY_TEST_DSN")
	if dsn == "" {
		t.Skip("CABWAY_TEST_DSN not set; skipping DB-backed race tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE bookings, cabs, routes, locations, users"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return NewPostgresStore(db), db
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, "migrations", "0001_init.sql")
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
