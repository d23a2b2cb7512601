package recorder

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"MusicTycoon/internal/model"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

// Dialect names a supported SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectNone     Dialect = "none"
)

// SQLRecorder persists history to SQLite or PostgreSQL. Rows are tagged with
// a per-process session ID so several runs can share one database.
type SQLRecorder struct {
	db      *sql.DB
	dialect Dialect
	session string
	mu      sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode lets report readers run while the simulation writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r, err := newSQLRecorder(db, DialectSQLite)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

// NewPostgresRecorder connects through pgx and runs migrations.
func NewPostgresRecorder(dsn string) (*SQLRecorder, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres recorder requires a DSN")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r, err := newSQLRecorder(db, DialectPostgres)
	if err != nil {
		return nil, err
	}
	log.Println("[INFO] postgres recorder opened")
	return r, nil
}

func newSQLRecorder(db *sql.DB, dialect Dialect) (*SQLRecorder, error) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	r := &SQLRecorder{db: db, dialect: dialect, session: uuid.NewString()}
	if err := r.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

// Session returns the ID stamped on every row this recorder writes.
func (r *SQLRecorder) Session() string { return r.session }

func (r *SQLRecorder) bind(pos int) string {
	if r.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

func (r *SQLRecorder) insertQuery(table string, cols []string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = r.bind(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(ph, ", "))
}

func (r *SQLRecorder) migrate(ctx context.Context) error {
	create := `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at BIGINT NOT NULL
	)`
	if _, err := r.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := map[string]bool{}
	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("scan schema migration: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate schema migrations: %w", err)
	}
	rows.Close()

	files, err := fs.Glob(migrationFS, fmt.Sprintf("migrations/%s/*.sql", r.dialect))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		base := filepath.Base(file)
		if applied[base] {
			continue
		}
		stmts, err := migrationFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration tx %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, string(stmts)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		q := r.insertQuery("schema_migrations", []string{"version", "applied_at"})
		if _, err := tx.ExecContext(ctx, q, base, time.Now().Unix()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

func (r *SQLRecorder) RecordEvent(evt model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := r.insertQuery("events", []string{"session", "recorded_at", "sim_time", "kind", "text"})
	_, err := r.db.Exec(q, r.session, time.Now().Unix(), evt.At, string(evt.Kind), evt.Text)
	return err
}

func (r *SQLRecorder) RecordSnapshot(snap *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := r.insertQuery("snapshots", []string{
		"session", "recorded_at", "sim_time", "frame", "artist",
		"fans", "cash", "reputation", "singles", "albums",
		"daily_streams", "total_streams", "total_sales", "earnings",
		"trend_genre", "trend_bonus",
	})
	_, err := r.db.Exec(q,
		r.session, time.Now().Unix(), snap.At, int64(snap.Frame), snap.Artist,
		snap.Fans, snap.Cash, snap.Reputation, snap.Singles, snap.Albums,
		snap.DailyStreams, snap.TotalStreams, snap.TotalSales, snap.Earnings,
		snap.TrendGenre, snap.TrendBonus,
	)
	return err
}

func (r *SQLRecorder) RecordRetirement(rel *model.Release, at float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := r.insertQuery("retirements", []string{
		"session", "recorded_at", "sim_time", "release_id", "name", "kind", "genre",
		"quality", "price", "tracks", "total_streams", "total_sales", "earnings", "age",
	})
	_, err := r.db.Exec(q,
		r.session, time.Now().Unix(), at, rel.ID, rel.Name, string(rel.Kind), rel.Genre,
		rel.Quality, rel.Price, len(rel.Tracks), rel.TotalStreams, rel.TotalSales, rel.Earnings, rel.Age,
	)
	return err
}

// CountRows returns how many rows this session wrote to table.
func (r *SQLRecorder) CountRows(table string) (int, error) {
	switch table {
	case "events", "snapshots", "retirements":
	default:
		return 0, fmt.Errorf("unknown history table %q", table)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE session = %s", table, r.bind(1))
	if err := r.db.QueryRow(q, r.session).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (r *SQLRecorder) Close() error {
	log.Printf("[INFO] closing %s recorder", r.dialect)
	return r.db.Close()
}
