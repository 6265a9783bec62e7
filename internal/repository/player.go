package repository

import (
	"context"

	"github.com/blockhaven/playersync/internal/domain"
)

// Player defines the persistence boundary for cross-server player state.
// All operations are synchronous and require an established connection;
// implementations return domain.ErrNotConnected otherwise.
type Player interface {
	// EnsureSchema idempotently creates the backing tables. Safe to call
	// on every startup.
	EnsureSchema(ctx context.Context) error

	ProfileExists(ctx context.Context, playerID string) (bool, error)
	UpsertProfile(ctx context.Context, profile *domain.PlayerProfile) error
	GetProfile(ctx context.Context, playerID string) (*domain.PlayerProfile, error)

	UpsertVitals(ctx context.Context, vitals *domain.VitalsRecord) error
	GetVitals(ctx context.Context, playerID string) (*domain.VitalsRecord, error)

	// ReplaceSlots deletes all existing slot rows for the player and
	// inserts the given set inside one transaction. Returns the number
	// of rows written.
	ReplaceSlots(ctx context.Context, playerID, originServerName string, slots []domain.SlotRecord) (int, error)

	// GetSlots returns the player's slot rows ordered by slot index.
	GetSlots(ctx context.Context, playerID string) ([]domain.SlotRecord, error)
}
