package live

// ItemStack is the engine-neutral view of one held item: its type
// identifier, stack count, damage/auxiliary value, and whatever nested
// metadata the item carries (enchantments, custom names, lore). The
// metadata tree uses JSON-compatible types only: map[string]any, []any,
// string, float64, bool, nil.
type ItemStack struct {
	TypeID   string
	Count    int
	Damage   int
	Metadata map[string]any
}

// HasMetadata reports whether the stack carries structured metadata.
func (s *ItemStack) HasMetadata() bool {
	return s != nil && len(s.Metadata) > 0
}
