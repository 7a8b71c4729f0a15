package cuboid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Validate(t *testing.T) {
	settings := DefaultSettings()
	require.NoError(t, settings.Validate())

	assert.Equal(t, 8, settings.Substeps)
	assert.Equal(t, 4, settings.Iterations)
	assert.InDelta(t, 0.1, settings.MaxStep, 1e-6)
	assert.InDelta(t, 0.999, settings.Integration.LinearDamping, 1e-6)
	assert.InDelta(t, 0.01, settings.Contact.Slop, 1e-6)
	assert.InDelta(t, 0.2, settings.Contact.Percent, 1e-6)
}

func TestSettings_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"no substeps", func(s *Settings) { s.Substeps = 0 }},
		{"no iterations", func(s *Settings) { s.Iterations = -1 }},
		{"zero max step", func(s *Settings) { s.MaxStep = 0 }},
		{"linear damping above one", func(s *Settings) { s.Integration.LinearDamping = 1.1 }},
		{"zero angular damping", func(s *Settings) { s.Integration.AngularDamping = 0 }},
		{"zero max angular velocity", func(s *Settings) { s.Integration.MaxAngularVelocity = 0 }},
		{"negative rest speed", func(s *Settings) { s.Integration.RestSpeed = -0.1 }},
		{"negative sleep time", func(s *Settings) { s.Integration.SleepTime = -1 }},
		{"negative slop", func(s *Settings) { s.Contact.Slop = -0.01 }},
		{"percent above one", func(s *Settings) { s.Contact.Percent = 1.5 }},
		{"negative stabilization speed", func(s *Settings) { s.Contact.StabilizationSpeed = -1 }},
		{"stabilization damping above one", func(s *Settings) { s.Contact.StabilizationAngularDamping = 2 }},
		{"negative friction torque", func(s *Settings) { s.Contact.FrictionTorqueScale = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)
			assert.Error(t, settings.Validate())
		})
	}
}

func TestLoadSettings_YAML(t *testing.T) {
	settings, err := LoadSettings(filepath.Join("testdata", "settings.yaml"))
	require.NoError(t, err)

	defaults := DefaultSettings()
	assert.Equal(t, 4, settings.Substeps)
	assert.Equal(t, defaults.Iterations, settings.Iterations)
	assert.InDelta(t, 0.99, settings.Integration.LinearDamping, 1e-6)
	assert.InDelta(t, 1.5, settings.Integration.SleepTime, 1e-6)
	assert.Equal(t, defaults.Integration.AngularDamping, settings.Integration.AngularDamping)
	assert.InDelta(t, 0.005, settings.Contact.Slop, 1e-6)
	assert.Equal(t, defaults.Contact.Percent, settings.Contact.Percent)
}

func TestLoadSettings_TOML(t *testing.T) {
	settings, err := LoadSettings(filepath.Join("testdata", "settings.toml"))
	require.NoError(t, err)

	defaults := DefaultSettings()
	assert.Equal(t, defaults.Substeps, settings.Substeps)
	assert.Equal(t, 6, settings.Iterations)
	assert.InDelta(t, 0.05, settings.MaxStep, 1e-6)
	assert.InDelta(t, 0.8, settings.Integration.AngularDamping, 1e-6)
	assert.Equal(t, defaults.Integration.LinearDamping, settings.Integration.LinearDamping)
	assert.InDelta(t, 0.4, settings.Contact.Percent, 1e-6)
	assert.Zero(t, settings.Contact.FrictionTorqueScale)
	assert.Equal(t, defaults.Contact.Slop, settings.Contact.Slop)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contains string
	}{
		{"missing file", "missing.yaml", "reading settings"},
		{"invalid values", "invalid.yaml", "substeps must be at least 1"},
		{"broken toml", "broken.toml", "decoding toml settings"},
		{"unknown extension", "settings.json", "unsupported settings format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(filepath.Join("testdata", tt.file))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestUnmarshal_EmptyKeepsDefaults(t *testing.T) {
	settings, err := Unmarshal(nil, "toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestFormatOf(t *testing.T) {
	tests := map[string]string{
		"world.yaml":         "yaml",
		"conf/World.YML":     "yml",
		"/etc/cuboid/a.toml": "toml",
		"settings":           "",
		"archive.tar.gz":     "gz",
	}

	for path, want := range tests {
		assert.Equal(t, want, FormatOf(path), path)
	}
}
