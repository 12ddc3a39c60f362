package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetVisionCache returns the cached response for key, or nil, nil if there
// is none.
func (s *SQLiteStore) GetVisionCache(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var response string
	err := s.db.QueryRow("SELECT response FROM vision_cache WHERE cache_key = ?", key).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vision cache: %w", err)
	}
	return []byte(response), nil
}

// SetVisionCache stores response under key, replacing any previous entry.
func (s *SQLiteStore) SetVisionCache(key string, response []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO vision_cache (cache_key, response)
		VALUES (?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			response = excluded.response,
			created_at = CURRENT_TIMESTAMP
	`, key, string(response))
	if err != nil {
		return fmt.Errorf("failed to cache vision response: %w", err)
	}
	return nil
}
