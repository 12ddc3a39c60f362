package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/raine/watch-appraiser/internal/analysis"
)

// Record is a stored analysis.
type Record struct {
	ID        string           `json:"id"`
	Owner     string           `json:"-"`
	Language  string           `json:"language"`
	Result    *analysis.Result `json:"result"`
	CreatedAt time.Time        `json:"createdAt"`
}

// SaveAnalysis stores a result for owner and returns the new record.
func (s *SQLiteStore) SaveAnalysis(owner, language string, result *analysis.Result) (*Record, error) {
	if result == nil {
		return nil, errors.New("result is required")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &Record{
		ID:        uuid.New().String(),
		Owner:     owner,
		Language:  language,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Exec(`
		INSERT INTO analyses (id, owner, language, brand, model, reference_number, confidence, is_authentic, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, owner, language, result.Brand, result.Model, result.ReferenceNumber,
		result.Confidence, result.Authenticity.IsAuthentic, string(resultJSON), rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	return rec, nil
}

// GetAnalysis retrieves an analysis by ID. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) GetAnalysis(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, owner, language, result_json, created_at FROM analyses WHERE id = ?`,
		id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListAnalyses returns the newest analyses of owner first.
func (s *SQLiteStore) ListAnalyses(owner string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, owner, language, result_json, created_at FROM analyses
		WHERE owner = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// DeleteAnalysis removes an analysis by ID and owner (for security).
func (s *SQLiteStore) DeleteAnalysis(id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM analyses WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountAnalyses returns how many analyses owner has stored.
func (s *SQLiteStore) CountAnalyses(owner string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM analyses WHERE owner = ?`, owner).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var resultJSON string
	if err := row.Scan(&rec.ID, &rec.Owner, &rec.Language, &resultJSON, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	var result analysis.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis %s: %w", rec.ID, err)
	}
	rec.Result = &result
	return &rec, nil
}
