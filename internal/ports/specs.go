package ports

import "stepviz/internal/domain"

// SpecRepository provides named tree presets
type SpecRepository interface {
	// ListPresets returns every available preset, built-ins first
	ListPresets() ([]domain.Preset, error)

	// LoadPreset returns the preset with the given name
	LoadPreset(name string) (*domain.Preset, error)

	// PresetPath returns the file backing a preset, creating it from the
	// built-in definition when it only exists in memory
	PresetPath(name string) (string, error)

	// SavePreset writes p under its name and returns the file path
	SavePreset(p domain.Preset) (string, error)
}
