package domain

import "time"

// Slot index layout. Backpack occupies 0-35, the four armor pieces and the
// offhand fill out the remainder. Every save writes the full set.
const (
	BackpackSlots = 36

	SlotHead    = 36
	SlotTorso   = 37
	SlotLegs    = 38
	SlotFeet    = 39
	SlotOffhand = 40

	TotalSlots = 41
)

// GameMode mirrors the engine's numeric game type.
type GameMode int

const (
	GameModeSurvival GameMode = iota
	GameModeCreative
	GameModeAdventure
	GameModeSpectator
)

func (m GameMode) String() string {
	switch m {
	case GameModeSurvival:
		return "survival"
	case GameModeCreative:
		return "creative"
	case GameModeAdventure:
		return "adventure"
	case GameModeSpectator:
		return "spectator"
	}
	return "unknown"
}

// Dimension identifies which world a position belongs to.
type Dimension int

const (
	DimensionOverworld Dimension = iota
	DimensionNether
	DimensionEnd
)

func (d Dimension) String() string {
	switch d {
	case DimensionOverworld:
		return "overworld"
	case DimensionNether:
		return "nether"
	case DimensionEnd:
		return "end"
	}
	return "unknown"
}

// PlayerProfile is the identity and session-accounting record. One row per
// player, keyed by PlayerID, never deleted.
type PlayerProfile struct {
	ID               int       `json:"id"`
	PlayerID         string    `json:"player_id"`
	DisplayName      string    `json:"display_name"`
	ExternalID       string    `json:"external_id,omitempty"`
	JoinedAt         time.Time `json:"joined_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	TotalPlaySeconds int64     `json:"total_play_seconds"`
	IsOnline         bool      `json:"is_online"`
}

// VitalsRecord is the shared cross-server snapshot of transient player
// state. At most one row per player; whichever server currently hosts the
// player overwrites it wholesale (last writer wins).
type VitalsRecord struct {
	PlayerID         string    `json:"player_id"`
	OriginServerName string    `json:"origin_server_name"`
	Health           int       `json:"health"`
	MaxHealth        int       `json:"max_health"`
	FoodLevel        int       `json:"food_level"`
	FoodSaturation   float32   `json:"food_saturation"`
	ExperienceLevel  int       `json:"experience_level"`
	// Experience progress is stored as integer hundredths of a percent to
	// keep it stable across float round-trips.
	ExperienceProgressHundredths int       `json:"experience_progress_hundredths"`
	GameMode                     GameMode  `json:"game_mode"`
	X                            float64   `json:"x"`
	Y                            float64   `json:"y"`
	Z                            float64   `json:"z"`
	Dimension                    Dimension `json:"dimension"`
	LastSyncedAt                 time.Time `json:"last_synced_at"`
}

// SlotRecord is one inventory or equipment slot in flat, storable form.
// An empty ItemTypeID means the slot is empty; readers must treat an
// absent row the same way.
type SlotRecord struct {
	PlayerID         string `json:"player_id"`
	OriginServerName string `json:"origin_server_name"`
	SlotIndex        int    `json:"slot_index"`
	ItemTypeID       string `json:"item_type_id"`
	StackCount       int    `json:"stack_count"`
	DamageOrAux      int    `json:"damage_or_aux"`
	EncodedMetadata  string `json:"encoded_metadata,omitempty"`
}

// IsEmpty reports whether the record represents an empty slot.
func (s SlotRecord) IsEmpty() bool {
	return s.ItemTypeID == ""
}
