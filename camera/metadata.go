package camera

// FieldDescriptor describes a tunable setting for HUD display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float32 // Slider minimum
	Max    float32 // Slider maximum
	Group  string  // Logical grouping
}

// MovementFieldDescriptors returns metadata for the adjustable MovementSettings fields.
func MovementFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "lerp", Label: "Lerp", Format: "%.2f", Min: 0, Max: 1, Group: "focus"},
		{ID: "dist", Label: "Distance", Format: "%.1f", Min: 1, Max: 50, Group: "follow"},
		{ID: "speed", Label: "Speed", Format: "%.1f", Min: 0, Max: 50, Group: "fly"},
		{ID: "sensitivity", Label: "Sensitivity", Format: "%.5f", Min: 0, Max: 0.001, Group: "fly"},
	}
}

// Field returns a pointer to the named setting, or nil for an unknown ID.
func (m *MovementSettings) Field(id string) *float32 {
	switch id {
	case "lerp":
		return &m.Lerp
	case "dist":
		return &m.Dist
	case "speed":
		return &m.Speed
	case "sensitivity":
		return &m.Sensitivity
	}
	return nil
}
