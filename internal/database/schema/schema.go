package schema

// SchemaSQL contains the idempotent schema bootstrap script. Three tables:
// profiles, the shared vitals snapshot, and the flat slot rows. Vitals and
// slots are global per player - deliberately not partitioned by server, so
// any server can pick up any player.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS players (
    id BIGSERIAL PRIMARY KEY,
    player_id UUID UNIQUE NOT NULL,
    display_name VARCHAR(64) NOT NULL,
    external_id VARCHAR(64) NOT NULL DEFAULT '',
    joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    total_play_seconds BIGINT NOT NULL DEFAULT 0,
    is_online BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_players_display_name ON players (display_name);

CREATE TABLE IF NOT EXISTS player_vitals (
    player_id UUID PRIMARY KEY,
    origin_server_name VARCHAR(64) NOT NULL DEFAULT '',
    health INTEGER NOT NULL DEFAULT 20,
    max_health INTEGER NOT NULL DEFAULT 20,
    food_level INTEGER NOT NULL DEFAULT 20,
    food_saturation REAL NOT NULL DEFAULT 0,
    experience_level INTEGER NOT NULL DEFAULT 0,
    experience_progress_hundredths INTEGER NOT NULL DEFAULT 0,
    game_mode SMALLINT NOT NULL DEFAULT 0,
    x DOUBLE PRECISION NOT NULL DEFAULT 0,
    y DOUBLE PRECISION NOT NULL DEFAULT 64,
    z DOUBLE PRECISION NOT NULL DEFAULT 0,
    dimension SMALLINT NOT NULL DEFAULT 0,
    last_synced_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS player_slots (
    id BIGSERIAL PRIMARY KEY,
    player_id UUID NOT NULL,
    origin_server_name VARCHAR(64) NOT NULL DEFAULT '',
    slot_index INTEGER NOT NULL,
    item_type_id VARCHAR(128) NOT NULL DEFAULT '',
    stack_count INTEGER NOT NULL DEFAULT 0,
    damage_or_aux INTEGER NOT NULL DEFAULT 0,
    encoded_metadata TEXT NOT NULL DEFAULT '',
    UNIQUE (player_id, slot_index)
);

CREATE INDEX IF NOT EXISTS idx_player_slots_player_id ON player_slots (player_id);
`
