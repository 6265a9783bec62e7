package sync

import (
	"context"

	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/live"
	"github.com/blockhaven/playersync/internal/logger"
)

// captureVitals reads the live player's attributes into a fresh
// VitalsRecord. Best-effort per attribute: a failed read substitutes the
// documented default and continues rather than aborting the capture.
func (s *service) captureVitals(ctx context.Context, player live.Player) *domain.VitalsRecord {
	log := logger.FromContext(ctx)

	vitals := &domain.VitalsRecord{
		PlayerID:         player.Identity(),
		OriginServerName: s.serverName,
		GameMode:         player.GameMode(),
	}

	if health, err := player.Vital(live.VitalHealth); err != nil {
		log.Warn("Failed to read health, using defaults", "player_id", vitals.PlayerID, "error", err)
		vitals.Health = DefaultHealth
		vitals.MaxHealth = DefaultMaxHealth
	} else {
		vitals.Health = int(health.Current)
		vitals.MaxHealth = int(health.Max)
	}

	if hunger, err := player.Vital(live.VitalHunger); err != nil {
		log.Warn("Failed to read food level, using default", "player_id", vitals.PlayerID, "error", err)
		vitals.FoodLevel = DefaultFoodLevel
	} else {
		vitals.FoodLevel = int(hunger.Current)
	}

	if saturation, err := player.Vital(live.VitalSaturation); err != nil {
		log.Warn("Failed to read saturation, using default", "player_id", vitals.PlayerID, "error", err)
		vitals.FoodSaturation = DefaultSaturation
	} else {
		vitals.FoodSaturation = float32(saturation.Current)
	}

	if xp, err := player.Vital(live.VitalExperience); err != nil {
		log.Warn("Failed to read experience, using defaults", "player_id", vitals.PlayerID, "error", err)
		vitals.ExperienceLevel = DefaultExperienceLevel
		vitals.ExperienceProgressHundredths = DefaultExperienceProgress
	} else {
		// The engine encodes level as the attribute max and progress
		// into the next level as a 0..1 fraction.
		vitals.ExperienceLevel = int(xp.Max)
		vitals.ExperienceProgressHundredths = int(xp.Current * 100)
	}

	pos := player.Position()
	vitals.X = pos.X
	vitals.Y = pos.Y
	vitals.Z = pos.Z
	vitals.Dimension = pos.Dimension

	return vitals
}

// captureSlots encodes all 41 slots, empty ones included, so every save
// writes the complete canonical set.
func (s *service) captureSlots(ctx context.Context, player live.Player) []domain.SlotRecord {
	slots := make([]domain.SlotRecord, 0, domain.TotalSlots)

	for i := 0; i < domain.BackpackSlots; i++ {
		slots = append(slots, s.codec.EncodeSlot(ctx, i, player.InventorySlot(i)))
	}
	for _, kind := range live.EquipmentKinds {
		idx := live.EquipmentSlotIndex(kind)
		slots = append(slots, s.codec.EncodeSlot(ctx, idx, player.EquipmentSlot(kind)))
	}

	return slots
}
