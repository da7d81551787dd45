// Package store provides SQLite-backed storage for saved scenarios.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound is returned when no scenario has the requested name.
	ErrNotFound = errors.New("scenario not found")
	// ErrEmptyName is returned when saving a scenario without a name.
	ErrEmptyName = errors.New("scenario name is empty")
)

// stampLayout is fixed-width so that timestamps sort correctly as text.
const stampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists scenarios in a SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening scenario db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("scenario store opened", zap.String("op", "store.Open"), zap.String("path", dbPath))
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts sc or replaces the scenario with the same name. CreatedAt is
// kept from the first save.
func (s *Store) Save(ctx context.Context, sc model.Scenario) (model.Scenario, error) {
	sc.Name = strings.TrimSpace(sc.Name)
	if sc.Name == "" {
		return sc, ErrEmptyName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return sc, fmt.Errorf("beginning tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC()
	stamp := now.Format(stampLayout)

	_, err = tx.ExecContext(ctx, `INSERT INTO scenarios (name, remaining, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET remaining = excluded.remaining, updated_at = excluded.updated_at`,
		sc.Name, sc.Remaining, stamp, stamp,
	)
	if err != nil {
		return sc, fmt.Errorf("saving scenario %q: %w", sc.Name, err)
	}

	var id int64
	var created string
	err = tx.QueryRowContext(ctx, "SELECT id, created_at FROM scenarios WHERE name = ?", sc.Name).Scan(&id, &created)
	if err != nil {
		return sc, fmt.Errorf("reading scenario %q: %w", sc.Name, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM scenario_costs WHERE scenario_id = ?", id); err != nil {
		return sc, fmt.Errorf("clearing costs: %w", err)
	}
	for i, c := range sc.Costs {
		_, err = tx.ExecContext(ctx, `INSERT INTO scenario_costs
			(scenario_id, position, cost_id, name, amount, description)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, int(c.ID), c.Name, c.Amount, c.Description,
		)
		if err != nil {
			return sc, fmt.Errorf("saving cost %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return sc, fmt.Errorf("committing scenario: %w", err)
	}

	sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sc.UpdatedAt = now
	s.logger.Info("scenario saved",
		zap.String("op", "store.Save"),
		zap.String("name", sc.Name),
		zap.Int("costs", len(sc.Costs)),
	)
	return sc, nil
}

// Get returns the scenario with the given name.
func (s *Store) Get(ctx context.Context, name string) (model.Scenario, error) {
	var sc model.Scenario
	var id int64
	var created, updated string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, remaining, created_at, updated_at FROM scenarios WHERE name = ?",
		strings.TrimSpace(name),
	).Scan(&id, &sc.Name, &sc.Remaining, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return sc, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return sc, fmt.Errorf("reading scenario %q: %w", name, err)
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)

	costs, err := s.loadCosts(ctx, "WHERE scenario_id = ?", id)
	if err != nil {
		return sc, err
	}
	sc.Costs = costs[id]
	return sc, nil
}

// List returns all scenarios, most recently updated first.
func (s *Store) List(ctx context.Context) ([]model.Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, remaining, created_at, updated_at FROM scenarios ORDER BY updated_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	var out []model.Scenario
	for rows.Next() {
		var sc model.Scenario
		var id int64
		var created, updated string
		if err := rows.Scan(&id, &sc.Name, &sc.Remaining, &created, &updated); err != nil {
			return nil, err
		}
		sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		sc.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		ids = append(ids, id)
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load costs
	costs, err := s.loadCosts(ctx, "")
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		out[i].Costs = costs[id]
	}
	return out, nil
}

// Delete removes the scenario with the given name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scenarios WHERE name = ?", strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("deleting scenario %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.logger.Info("scenario deleted", zap.String("op", "store.Delete"), zap.String("name", name))
	return nil
}

// Count returns the number of saved scenarios.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scenarios").Scan(&count)
	return count, err
}

func (s *Store) loadCosts(ctx context.Context, where string, args ...any) (map[int64][]budget.CostEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT scenario_id, cost_id, name, amount, description FROM scenario_costs "+where+" ORDER BY scenario_id, position",
		args...)
	if err != nil {
		return nil, fmt.Errorf("loading costs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]budget.CostEntry)
	for rows.Next() {
		var sid int64
		var id int
		var e budget.CostEntry
		if err := rows.Scan(&sid, &id, &e.Name, &e.Amount, &e.Description); err != nil {
			return nil, err
		}
		e.ID = budget.CostID(id)
		out[sid] = append(out[sid], e)
	}
	return out, rows.Err()
}
