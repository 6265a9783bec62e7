// Package live defines the capability surface the synchronization core
// consumes from the game engine's player object model. The engine side
// provides an adapter implementing Player; the core never touches engine
// types directly.
package live

import (
	"fmt"

	"github.com/blockhaven/playersync/internal/domain"
)

// VitalKind names one readable/writable attribute pair on the live player.
type VitalKind string

const (
	VitalHealth     VitalKind = "health"
	VitalHunger     VitalKind = "hunger"
	VitalSaturation VitalKind = "saturation"
	VitalExperience VitalKind = "experience"
)

// Vital is a current/max attribute reading. For experience, Max carries
// the level and Current the progress fraction into the next level,
// matching the engine's attribute encoding.
type Vital struct {
	Current float64
	Max     float64
}

// AttributeError reports a failed attribute read or write. Capture paths
// recover from it with documented defaults rather than aborting.
type AttributeError struct {
	Kind VitalKind
	Err  error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %s: %v", e.Kind, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// EquipmentKind addresses one equipment position.
type EquipmentKind string

const (
	EquipmentHead    EquipmentKind = "head"
	EquipmentTorso   EquipmentKind = "torso"
	EquipmentLegs    EquipmentKind = "legs"
	EquipmentFeet    EquipmentKind = "feet"
	EquipmentOffhand EquipmentKind = "offhand"
)

// EquipmentSlotIndex maps an equipment kind to its flat slot index.
func EquipmentSlotIndex(kind EquipmentKind) int {
	switch kind {
	case EquipmentHead:
		return domain.SlotHead
	case EquipmentTorso:
		return domain.SlotTorso
	case EquipmentLegs:
		return domain.SlotLegs
	case EquipmentFeet:
		return domain.SlotFeet
	case EquipmentOffhand:
		return domain.SlotOffhand
	}
	return -1
}

// EquipmentKinds lists every equipment position in slot-index order.
var EquipmentKinds = []EquipmentKind{
	EquipmentHead,
	EquipmentTorso,
	EquipmentLegs,
	EquipmentFeet,
	EquipmentOffhand,
}

// Position is the player's location in a dimension.
type Position struct {
	X, Y, Z   float64
	Dimension domain.Dimension
}

// Player is the live in-engine player as seen by the sync core.
//
// Slot getters return nil for an empty slot; slot setters accept nil to
// clear. All calls execute on the engine's game-logic thread, so
// implementations need no internal locking.
type Player interface {
	Identity() string
	DisplayName() string
	ExternalID() string

	Vital(kind VitalKind) (Vital, error)
	SetVital(kind VitalKind, v Vital) error

	GameMode() domain.GameMode
	SetGameMode(mode domain.GameMode)

	Position() Position

	InventorySlot(i int) *ItemStack
	SetInventorySlot(i int, stack *ItemStack)

	EquipmentSlot(kind EquipmentKind) *ItemStack
	SetEquipmentSlot(kind EquipmentKind, stack *ItemStack)

	// RequestClientResync asks the engine to resend inventory and armor
	// state to the client after a load overwrote them server-side.
	RequestClientResync()
}
