package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/deckroute/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.deckroute/data/deckroute.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deckroute", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "deckroute.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogCache returns a CatalogCache backed by this store.
func (s *Store) CatalogCache() driven.CatalogCache {
	return &catalogCache{store: s}
}

// RunStore returns a RunStore backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(content); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Catalog Cache ====================

// catalogCache implements driven.CatalogCache.
type catalogCache struct {
	store *Store
}

var _ driven.CatalogCache = (*catalogCache)(nil)

// SaveSnapshot stores or replaces the snapshot for a source.
func (c *catalogCache) SaveSnapshot(ctx context.Context, source string, snapshot *domain.CatalogSnapshot) error {
	slideTypes, err := json.Marshal(snapshot.SlideTypes)
	if err != nil {
		return fmt.Errorf("marshalling slide types: %w", err)
	}

	fetchedAt := snapshot.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO catalog_snapshots (source, version, slide_types, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			version = excluded.version,
			slide_types = excluded.slide_types,
			fetched_at = excluded.fetched_at
	`, source, snapshot.Version, string(slideTypes), fetchedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving catalog snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the last snapshot for a source.
func (c *catalogCache) LoadSnapshot(ctx context.Context, source string) (*domain.CatalogSnapshot, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT version, slide_types, fetched_at FROM catalog_snapshots WHERE source = ?
	`, source)

	var (
		snapshot   domain.CatalogSnapshot
		slideTypes string
		fetchedAt  int64
	)
	if err := row.Scan(&snapshot.Version, &slideTypes, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning catalog snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(slideTypes), &snapshot.SlideTypes); err != nil {
		return nil, fmt.Errorf("unmarshalling slide types: %w", err)
	}
	snapshot.FetchedAt = time.Unix(0, fetchedAt)
	return &snapshot, nil
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

const runColumns = `id, session_id, presentation_title, source, started_at, duration_ns,
	total_slides, successful, failed, skipped, diversity_score, error_summary`

// SaveRun stores a run record.
func (s *runStore) SaveRun(ctx context.Context, run *domain.RunRecord) error {
	var summary sql.NullString
	if run.ErrorSummary != nil {
		data, err := json.Marshal(run.ErrorSummary)
		if err != nil {
			return fmt.Errorf("marshalling error summary: %w", err)
		}
		summary = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO routing_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			presentation_title = excluded.presentation_title,
			source = excluded.source,
			started_at = excluded.started_at,
			duration_ns = excluded.duration_ns,
			total_slides = excluded.total_slides,
			successful = excluded.successful,
			failed = excluded.failed,
			skipped = excluded.skipped,
			diversity_score = excluded.diversity_score,
			error_summary = excluded.error_summary
	`, run.ID, run.SessionID, run.PresentationTitle, run.Source, run.StartedAt.UnixNano(),
		int64(run.Duration), run.TotalSlides, run.Successful, run.Failed, run.Skipped,
		run.DiversityScore, summary)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.RunRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM routing_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return run, err
}

// ListRuns returns the most recent runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM routing_runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run.
func (s *runStore) DeleteRun(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM routing_runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.RunRecord, error) {
	var (
		run       domain.RunRecord
		startedAt int64
		duration  int64
		summary   sql.NullString
	)
	if err := row.Scan(&run.ID, &run.SessionID, &run.PresentationTitle, &run.Source,
		&startedAt, &duration, &run.TotalSlides, &run.Successful, &run.Failed,
		&run.Skipped, &run.DiversityScore, &summary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	run.StartedAt = time.Unix(0, startedAt)
	run.Duration = time.Duration(duration)
	if summary.Valid && summary.String != "" {
		run.ErrorSummary = &domain.ErrorSummary{}
		if err := json.Unmarshal([]byte(summary.String), run.ErrorSummary); err != nil {
			return nil, fmt.Errorf("unmarshalling error summary: %w", err)
		}
	}
	return &run, nil
}
