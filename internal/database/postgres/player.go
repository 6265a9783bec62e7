package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockhaven/playersync/internal/database/schema"
	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/repository"
)

// PlayerRepository implements repository.Player for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) repository.Player {
	return &PlayerRepository{db: db}
}

// connected guards every operation: a repository built without a pool
// fails fast instead of attempting I/O.
func (r *PlayerRepository) connected() error {
	if r.db == nil {
		return domain.ErrNotConnected
	}
	return nil
}

// EnsureSchema idempotently creates the backing tables
func (r *PlayerRepository) EnsureSchema(ctx context.Context) error {
	if err := r.connected(); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, schema.SchemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// ProfileExists reports whether the player has ever been recorded
func (r *PlayerRepository) ProfileExists(ctx context.Context, playerID string) (bool, error) {
	if err := r.connected(); err != nil {
		return false, err
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM players WHERE player_id = $1)`
	if err := r.db.QueryRow(ctx, query, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}
	return exists, nil
}

// UpsertProfile inserts a new profile or updates the existing row keyed on
// player_id. joined_at is preserved on conflict; everything else follows
// the caller's values.
func (r *PlayerRepository) UpsertProfile(ctx context.Context, profile *domain.PlayerProfile) error {
	if err := r.connected(); err != nil {
		return err
	}

	query := `
		INSERT INTO players (player_id, display_name, external_id, joined_at, last_seen_at, total_play_seconds, is_online)
		VALUES ($1, $2, $3, NOW(), NOW(), $4, $5)
		ON CONFLICT (player_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    external_id = EXCLUDED.external_id,
		    last_seen_at = NOW(),
		    total_play_seconds = EXCLUDED.total_play_seconds,
		    is_online = EXCLUDED.is_online
	`
	_, err := r.db.Exec(ctx, query,
		profile.PlayerID,
		profile.DisplayName,
		profile.ExternalID,
		profile.TotalPlaySeconds,
		profile.IsOnline,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by player ID
func (r *PlayerRepository) GetProfile(ctx context.Context, playerID string) (*domain.PlayerProfile, error) {
	if err := r.connected(); err != nil {
		return nil, err
	}

	query := `
		SELECT id, player_id, display_name, external_id, joined_at, last_seen_at, total_play_seconds, is_online
		FROM players
		WHERE player_id = $1
	`
	var p domain.PlayerProfile
	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&p.ID,
		&p.PlayerID,
		&p.DisplayName,
		&p.ExternalID,
		&p.JoinedAt,
		&p.LastSeenAt,
		&p.TotalPlaySeconds,
		&p.IsOnline,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpsertVitals overwrites the player's shared vitals snapshot. Last writer
// wins across servers; there is exactly one row per player.
func (r *PlayerRepository) UpsertVitals(ctx context.Context, vitals *domain.VitalsRecord) error {
	if err := r.connected(); err != nil {
		return err
	}

	query := `
		INSERT INTO player_vitals (player_id, origin_server_name, health, max_health, food_level, food_saturation,
			experience_level, experience_progress_hundredths, game_mode, x, y, z, dimension, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET origin_server_name = EXCLUDED.origin_server_name,
		    health = EXCLUDED.health,
		    max_health = EXCLUDED.max_health,
		    food_level = EXCLUDED.food_level,
		    food_saturation = EXCLUDED.food_saturation,
		    experience_level = EXCLUDED.experience_level,
		    experience_progress_hundredths = EXCLUDED.experience_progress_hundredths,
		    game_mode = EXCLUDED.game_mode,
		    x = EXCLUDED.x,
		    y = EXCLUDED.y,
		    z = EXCLUDED.z,
		    dimension = EXCLUDED.dimension,
		    last_synced_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		vitals.PlayerID,
		vitals.OriginServerName,
		vitals.Health,
		vitals.MaxHealth,
		vitals.FoodLevel,
		vitals.FoodSaturation,
		vitals.ExperienceLevel,
		vitals.ExperienceProgressHundredths,
		int(vitals.GameMode),
		vitals.X,
		vitals.Y,
		vitals.Z,
		int(vitals.Dimension),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vitals: %w", err)
	}
	return nil
}

// GetVitals retrieves the shared vitals snapshot for a player
func (r *PlayerRepository) GetVitals(ctx context.Context, playerID string) (*domain.VitalsRecord, error) {
	if err := r.connected(); err != nil {
		return nil, err
	}

	query := `
		SELECT player_id, origin_server_name, health, max_health, food_level, food_saturation,
			experience_level, experience_progress_hundredths, game_mode, x, y, z, dimension, last_synced_at
		FROM player_vitals
		WHERE player_id = $1
	`
	var v domain.VitalsRecord
	var gameMode, dimension int
	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&v.PlayerID,
		&v.OriginServerName,
		&v.Health,
		&v.MaxHealth,
		&v.FoodLevel,
		&v.FoodSaturation,
		&v.ExperienceLevel,
		&v.ExperienceProgressHundredths,
		&gameMode,
		&v.X,
		&v.Y,
		&v.Z,
		&dimension,
		&v.LastSyncedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVitalsNotFound
		}
		return nil, fmt.Errorf("failed to get vitals: %w", err)
	}
	v.GameMode = domain.GameMode(gameMode)
	v.Dimension = domain.Dimension(dimension)
	return &v, nil
}

// ReplaceSlots deletes all existing slot rows for the player and inserts
// the given set. The delete and inserts run in one transaction so readers
// never observe the transient empty set.
func (r *PlayerRepository) ReplaceSlots(ctx context.Context, playerID, originServerName string, slots []domain.SlotRecord) (int, error) {
	if err := r.connected(); err != nil {
		return 0, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM player_slots WHERE player_id = $1`, playerID); err != nil {
		return 0, fmt.Errorf("failed to delete old slots: %w", err)
	}

	insert := `
		INSERT INTO player_slots (player_id, origin_server_name, slot_index, item_type_id, stack_count, damage_or_aux, encoded_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, slot := range slots {
		_, err := tx.Exec(ctx, insert,
			playerID,
			originServerName,
			slot.SlotIndex,
			slot.ItemTypeID,
			slot.StackCount,
			slot.DamageOrAux,
			slot.EncodedMetadata,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert slot %d: %w", slot.SlotIndex, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit slot replacement: %w", err)
	}
	return len(slots), nil
}

// GetSlots returns the player's slot rows ordered by slot index ascending
func (r *PlayerRepository) GetSlots(ctx context.Context, playerID string) ([]domain.SlotRecord, error) {
	if err := r.connected(); err != nil {
		return nil, err
	}

	query := `
		SELECT player_id, origin_server_name, slot_index, item_type_id, stack_count, damage_or_aux, encoded_metadata
		FROM player_slots
		WHERE player_id = $1
		ORDER BY slot_index ASC
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.SlotRecord
	for rows.Next() {
		var s domain.SlotRecord
		err := rows.Scan(
			&s.PlayerID,
			&s.OriginServerName,
			&s.SlotIndex,
			&s.ItemTypeID,
			&s.StackCount,
			&s.DamageOrAux,
			&s.EncodedMetadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slot rows: %w", err)
	}
	return slots, nil
}
