package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist or belongs to another owner.
var ErrNotFound = errors.New("not found")

// DefaultListLimit caps ListAnalyses when no positive limit is given.
const DefaultListLimit = 20

// AnalysisStore defines the interface for analysis history persistence.
type AnalysisStore interface {
	SaveAnalysis(owner, language string, result *analysis.Result) (*Record, error)
	GetAnalysis(id string) (*Record, error)
	ListAnalyses(owner string, limit int) ([]Record, error)
	DeleteAnalysis(id, owner string) error
	CountAnalyses(owner string) (int, error)
	Close() error
}

// VisionCache stores raw model responses by request hash.
type VisionCache interface {
	GetVisionCache(key string) ([]byte, error)
	SetVisionCache(key string, response []byte) error
}

// SQLiteStore implements AnalysisStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based analysis store. dbPath may be
// ":memory:" for a private in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Configure SQLite with WAL mode and busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", dbPath).Msg("failed to restrict database permissions")
		}
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		language TEXT NOT NULL,
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		reference_number TEXT NOT NULL DEFAULT '',
		confidence REAL NOT NULL,
		is_authentic INTEGER NOT NULL,
		result_json TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create analyses table: %w", err)
	}

	indexQuery := `CREATE INDEX IF NOT EXISTS idx_analyses_owner_created ON analyses(owner, created_at DESC);`
	if _, err := s.db.Exec(indexQuery); err != nil {
		return fmt.Errorf("failed to create analyses index: %w", err)
	}

	visionCacheQuery := `
	CREATE TABLE IF NOT EXISTS vision_cache (
		cache_key TEXT PRIMARY KEY,
		response TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(visionCacheQuery); err != nil {
		return fmt.Errorf("failed to create vision_cache table: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
