package storage

import (
	"fmt"
	"time"
)

// LevelResult is one finished attempt at a level.
type LevelResult struct {
	ID        int64
	Profile   string
	Level     int
	Score     int
	Stars     int
	Won       bool
	MovesUsed int
	CreatedAt time.Time
}

// LevelBest summarizes every attempt a profile made at one level.
type LevelBest struct {
	Level     int
	BestScore int
	BestStars int
	Attempts  int
	Wins      int
}

// SaveLevelResult records an attempt and returns the new row ID.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	won := 0
	if r.Won {
		won = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO level_results (profile, level, score, stars, won, moves_used)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		profileOrDefault(r.Profile), r.Level, r.Score, r.Stars, won, r.MovesUsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestResults returns one summary per attempted level for profile, ordered
// by level.
func (s *Store) BestResults(profile string) ([]LevelBest, error) {
	rows, err := s.db.Query(
		`SELECT level, MAX(score), MAX(stars), COUNT(*), COALESCE(SUM(won), 0)
		 FROM level_results
		 WHERE profile = ?
		 GROUP BY level
		 ORDER BY level ASC`,
		profileOrDefault(profile),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var out []LevelBest
	for rows.Next() {
		var b LevelBest
		if err := rows.Scan(&b.Level, &b.BestScore, &b.BestStars, &b.Attempts, &b.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LevelHistory returns the most recent attempts at level for profile.
func (s *Store) LevelHistory(profile string, level, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, profile, level, score, stars, won, moves_used, created_at
		 FROM level_results
		 WHERE profile = ? AND level = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		profileOrDefault(profile), level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level history: %w", err)
	}
	defer rows.Close()

	var out []LevelResult
	for rows.Next() {
		var r LevelResult
		var won int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Profile, &r.Level, &r.Score, &r.Stars, &won, &r.MovesUsed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Won = won != 0
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
