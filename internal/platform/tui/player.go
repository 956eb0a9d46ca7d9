package tui

import (
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Player ties a profile to the store its results go to and the game
// environment built for it.
type Player struct {
	Profile string
	Store   *storage.Store // nil plays without persistence
	Env     registry.Env
}

// NewPlayer binds env to the profile's progress in store. With a nil store
// the environment keeps its in-memory progress.
func NewPlayer(store *storage.Store, profile string, env registry.Env) Player {
	if profile == "" {
		profile = storage.DefaultProfile
	}
	if store != nil {
		progress := store.Progress(profile)
		env.Progress = progress
		env.Recorder = progress
	}
	if env.Logger != nil {
		env.Logger = env.Logger.With("profile", profile)
	}
	return Player{Profile: profile, Store: store, Env: env}
}

// Unlocked returns the highest level the player may start, at least 1.
func (p Player) Unlocked() int {
	if p.Env.Progress == nil {
		return 1
	}
	n, err := p.Env.Progress.HighestUnlocked()
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// BestStars returns the best star rating per level number.
func (p Player) BestStars() map[int]int {
	out := make(map[int]int)
	if p.Store == nil {
		return out
	}
	best, err := p.Store.BestResults(p.Profile)
	if err != nil {
		return out
	}
	for _, b := range best {
		out[b.Level] = b.BestStars
	}
	return out
}

// SaveScore stores a finished run. Zero scores are not kept.
func (p Player) SaveScore(gameID string, score, level int) error {
	if p.Store == nil || score <= 0 {
		return nil
	}
	_, err := p.Store.SaveScore(gameID, p.Profile, score, level)
	return err
}
