package codec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockhaven/playersync/internal/codec"
	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/live"
)

func TestEncodeSlot_NilStackYieldsEmptyRecord(t *testing.T) {
	c := codec.New()

	rec := c.EncodeSlot(context.Background(), 7, nil)
	assert.Equal(t, 7, rec.SlotIndex)
	assert.True(t, rec.IsEmpty())
	assert.Empty(t, rec.EncodedMetadata)
}

func TestDecodeSlot_EmptyRecordYieldsNil(t *testing.T) {
	c := codec.New()

	stack := c.DecodeSlot(context.Background(), domain.SlotRecord{SlotIndex: 3})
	assert.Nil(t, stack)
}

func TestRoundTrip_PlainItem(t *testing.T) {
	c := codec.New()
	in := &live.ItemStack{TypeID: "minecraft:cobblestone", Count: 64, Damage: 0}

	rec := c.EncodeSlot(context.Background(), 12, in)
	assert.Equal(t, "minecraft:cobblestone", rec.ItemTypeID)
	assert.Equal(t, 64, rec.StackCount)
	assert.Empty(t, rec.EncodedMetadata)

	out := c.DecodeSlot(context.Background(), rec)
	require.NotNil(t, out)
	assert.Equal(t, in.TypeID, out.TypeID)
	assert.Equal(t, in.Count, out.Count)
	assert.Nil(t, out.Metadata)
}

func TestRoundTrip_NestedMetadata(t *testing.T) {
	c := codec.New()
	in := &live.ItemStack{
		TypeID: "minecraft:diamond_sword",
		Count:  1,
		Damage: 130,
		Metadata: map[string]any{
			"display": map[string]any{"Name": "Excalibur"},
			"ench": []any{
				map[string]any{"id": "sharpness", "lvl": float64(5)},
				map[string]any{"id": "unbreaking", "lvl": float64(3)},
			},
		},
	}

	rec := c.EncodeSlot(context.Background(), domain.SlotOffhand, in)
	require.NotEmpty(t, rec.EncodedMetadata)

	out := c.DecodeSlot(context.Background(), rec)
	require.NotNil(t, out)
	assert.Equal(t, 130, out.Damage)
	assert.Equal(t, in.Metadata, out.Metadata)
}

func TestDecodeSlot_CorruptMetadataYieldsBareItem(t *testing.T) {
	c := codec.New()
	rec := domain.SlotRecord{
		SlotIndex:       4,
		ItemTypeID:      "minecraft:elytra",
		StackCount:      1,
		EncodedMetadata: "{not json",
	}

	out := c.DecodeSlot(context.Background(), rec)
	require.NotNil(t, out)
	assert.Equal(t, "minecraft:elytra", out.TypeID)
	assert.Nil(t, out.Metadata)
}

func TestEncodeSlot_UnencodableMetadataStoresBareItem(t *testing.T) {
	c := codec.New()
	in := &live.ItemStack{
		TypeID:   "minecraft:compass",
		Count:    1,
		Metadata: map[string]any{"target": make(chan int)},
	}

	rec := c.EncodeSlot(context.Background(), 9, in)
	assert.Equal(t, "minecraft:compass", rec.ItemTypeID)
	assert.Empty(t, rec.EncodedMetadata)
}
