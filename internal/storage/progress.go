package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/session"
)

// HighestUnlocked returns the highest level profile may start. Unknown
// profiles have level 1 unlocked.
func (s *Store) HighestUnlocked(profile string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT highest_unlocked FROM progress WHERE profile = ?",
		profileOrDefault(profile),
	).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return max(level, 1), nil
}

// SetHighestUnlocked stores the highest unlocked level for profile.
func (s *Store) SetHighestUnlocked(profile string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, highest_unlocked) VALUES (?, ?)
		 ON CONFLICT(profile) DO UPDATE SET
		   highest_unlocked = excluded.highest_unlocked,
		   updated_at = CURRENT_TIMESTAMP`,
		profileOrDefault(profile), level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ResetProgress forgets the unlocked levels of profile.
func (s *Store) ResetProgress(profile string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE profile = ?", profileOrDefault(profile))
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// Progress binds a Store to one profile so sessions can persist unlocked
// levels and finished attempts through it.
type Progress struct {
	store   *Store
	profile string
}

// Progress returns the progress view of profile.
func (s *Store) Progress(profile string) *Progress {
	return &Progress{store: s, profile: profileOrDefault(profile)}
}

// Profile returns the bound profile name.
func (p *Progress) Profile() string { return p.profile }

func (p *Progress) HighestUnlocked() (int, error) {
	return p.store.HighestUnlocked(p.profile)
}

func (p *Progress) SetHighestUnlocked(level int) error {
	return p.store.SetHighestUnlocked(p.profile, level)
}

// RecordAttempt stores a finished attempt as a level result.
func (p *Progress) RecordAttempt(a session.Attempt) error {
	_, err := p.store.SaveLevelResult(LevelResult{
		Profile:   p.profile,
		Level:     a.Level,
		Score:     a.Score,
		Stars:     a.Stars,
		Won:       a.Won,
		MovesUsed: a.MovesUsed,
	})
	return err
}

var (
	_ session.ProgressStore   = (*Progress)(nil)
	_ session.AttemptRecorder = (*Progress)(nil)
)
