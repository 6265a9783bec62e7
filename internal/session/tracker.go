// Package session tracks, per process, when each online player joined so
// play-time deltas can be computed on leave and shutdown. Nothing here is
// persisted.
package session

import (
	"sync"
	"time"
)

// Entry pairs a player with the seconds their closed session lasted.
type Entry struct {
	PlayerID string
	Elapsed  int64
}

// Tracker is a process-local map from player identity to join instant.
type Tracker struct {
	mu    sync.Mutex
	joins map[string]time.Time
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{joins: make(map[string]time.Time)}
}

// Start records the player's join instant, replacing any stale entry.
func (t *Tracker) Start(playerID string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.joins[playerID] = now
}

// End removes the player's entry and returns the elapsed whole seconds.
// A missing entry is not an error; ok is false and the duration
// contribution is zero.
func (t *Tracker) End(playerID string, now time.Time) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	joined, ok := t.joins[playerID]
	if !ok {
		return 0, false
	}
	delete(t.joins, playerID)
	return elapsedSeconds(joined, now), true
}

// Reset restarts the player's session clock without losing tracking,
// returning the seconds accumulated so far. Used on transfer, where
// play time is banked but the player stays connected until the engine
// completes the move.
func (t *Tracker) Reset(playerID string, now time.Time) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	joined, ok := t.joins[playerID]
	if !ok {
		return 0, false
	}
	t.joins[playerID] = now
	return elapsedSeconds(joined, now), true
}

// DrainAll removes every tracked session and returns the elapsed seconds
// for each, for shutdown-time saves.
func (t *Tracker) DrainAll(now time.Time) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, 0, len(t.joins))
	for playerID, joined := range t.joins {
		entries = append(entries, Entry{PlayerID: playerID, Elapsed: elapsedSeconds(joined, now)})
	}
	t.joins = make(map[string]time.Time)
	return entries
}

// Len reports how many sessions are currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.joins)
}

func elapsedSeconds(from, to time.Time) int64 {
	secs := int64(to.Sub(from) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
