// Package codec converts live inventory and equipment slots to flat,
// storable slot records and back. Metadata rides along as a
// self-describing JSON document so arbitrarily nested structures
// (enchantments, custom names) round-trip losslessly through the flat
// schema.
package codec

import (
	"context"
	"encoding/json"

	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/live"
	"github.com/blockhaven/playersync/internal/logger"
)

// Codec is a pure transformation; its only side effect is warning logs
// when metadata fails to encode or decode.
type Codec struct{}

// New creates a Codec.
func New() *Codec {
	return &Codec{}
}

// EncodeSlot captures a live slot into a SlotRecord. A nil stack produces
// the canonical empty record for the index. Metadata serialization failure
// is non-fatal: the item is stored without metadata and a warning logged.
func (c *Codec) EncodeSlot(ctx context.Context, slotIndex int, stack *live.ItemStack) domain.SlotRecord {
	rec := domain.SlotRecord{SlotIndex: slotIndex}
	if stack == nil || stack.TypeID == "" {
		return rec
	}

	rec.ItemTypeID = stack.TypeID
	rec.StackCount = stack.Count
	rec.DamageOrAux = stack.Damage

	if stack.HasMetadata() {
		encoded, err := json.Marshal(stack.Metadata)
		if err != nil {
			logger.FromContext(ctx).Warn("Failed to encode item metadata, storing item without it",
				"slot", slotIndex,
				"item_type", stack.TypeID,
				"error", err)
		} else {
			rec.EncodedMetadata = string(encoded)
		}
	}

	return rec
}

// DecodeSlot reconstructs a live stack from a record. An empty record
// yields nil, the explicit clear-this-slot instruction. Metadata parse
// failure is non-fatal: the bare item is returned and a warning logged.
func (c *Codec) DecodeSlot(ctx context.Context, rec domain.SlotRecord) *live.ItemStack {
	if rec.IsEmpty() {
		return nil
	}

	stack := &live.ItemStack{
		TypeID: rec.ItemTypeID,
		Count:  rec.StackCount,
		Damage: rec.DamageOrAux,
	}

	if rec.EncodedMetadata != "" {
		var meta map[string]any
		if err := json.Unmarshal([]byte(rec.EncodedMetadata), &meta); err != nil {
			logger.FromContext(ctx).Warn("Failed to decode item metadata, applying item without it",
				"slot", rec.SlotIndex,
				"item_type", rec.ItemTypeID,
				"error", err)
		} else {
			stack.Metadata = meta
		}
	}

	return stack
}
