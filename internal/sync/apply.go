package sync

import (
	"context"

	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/live"
	"github.com/blockhaven/playersync/internal/logger"
)

// applyVitals pushes a stored vitals record onto the live player.
// Individual attribute write failures are logged and skipped; the rest of
// the record still applies.
func (s *service) applyVitals(ctx context.Context, player live.Player, vitals *domain.VitalsRecord) {
	log := logger.FromContext(ctx)

	writes := []struct {
		kind  live.VitalKind
		vital live.Vital
	}{
		{live.VitalHealth, live.Vital{Current: float64(vitals.Health), Max: float64(vitals.MaxHealth)}},
		{live.VitalHunger, live.Vital{Current: float64(vitals.FoodLevel)}},
		{live.VitalSaturation, live.Vital{Current: float64(vitals.FoodSaturation)}},
		{live.VitalExperience, live.Vital{
			Current: float64(vitals.ExperienceProgressHundredths) / 100,
			Max:     float64(vitals.ExperienceLevel),
		}},
	}

	for _, w := range writes {
		if err := player.SetVital(w.kind, w.vital); err != nil {
			log.Warn("Failed to apply vital", "player_id", vitals.PlayerID, "kind", w.kind, "error", err)
		}
	}

	player.SetGameMode(vitals.GameMode)

	log.Debug("Applied stored vitals",
		"player_id", vitals.PlayerID,
		"health", vitals.Health,
		"max_health", vitals.MaxHealth,
		"food", vitals.FoodLevel,
		"xp_level", vitals.ExperienceLevel,
		"origin_server", vitals.OriginServerName)
}

// applySlots clears every live slot, then sets each stored non-empty one.
// Clearing first guarantees no local leftovers survive the load even when
// the stored set is sparse.
func (s *service) applySlots(ctx context.Context, player live.Player, slots []domain.SlotRecord) {
	for i := 0; i < domain.BackpackSlots; i++ {
		player.SetInventorySlot(i, nil)
	}
	for _, kind := range live.EquipmentKinds {
		player.SetEquipmentSlot(kind, nil)
	}

	applied := 0
	for _, rec := range slots {
		stack := s.codec.DecodeSlot(ctx, rec)
		if stack == nil {
			continue
		}
		if rec.SlotIndex < domain.BackpackSlots {
			player.SetInventorySlot(rec.SlotIndex, stack)
		} else {
			switch rec.SlotIndex {
			case domain.SlotHead:
				player.SetEquipmentSlot(live.EquipmentHead, stack)
			case domain.SlotTorso:
				player.SetEquipmentSlot(live.EquipmentTorso, stack)
			case domain.SlotLegs:
				player.SetEquipmentSlot(live.EquipmentLegs, stack)
			case domain.SlotFeet:
				player.SetEquipmentSlot(live.EquipmentFeet, stack)
			case domain.SlotOffhand:
				player.SetEquipmentSlot(live.EquipmentOffhand, stack)
			default:
				logger.FromContext(ctx).Warn("Ignoring slot record with out-of-range index",
					"player_id", rec.PlayerID, "slot", rec.SlotIndex)
				continue
			}
		}
		applied++
	}

	logger.FromContext(ctx).Debug("Applied stored slots", "applied", applied, "rows", len(slots))
}
