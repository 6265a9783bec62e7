package sync

// Capture defaults, substituted when a live attribute read fails so one
// broken attribute never blocks the rest of a save.
const (
	DefaultHealth     = 20
	DefaultMaxHealth  = 20
	DefaultFoodLevel  = 20
	DefaultSaturation = 0

	DefaultExperienceLevel    = 0
	DefaultExperienceProgress = 0
)
