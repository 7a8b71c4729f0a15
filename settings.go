package cuboid

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/constraint"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings gathers every tuning knob of the simulation
type Settings struct {
	// Sub-steps per Step
	Substeps int `yaml:"substeps" toml:"substeps"`
	// Resolution passes over all pairs per sub-step
	Iterations int `yaml:"iterations" toml:"iterations"`
	// Upper bound for a frame time, see ClampStep
	MaxStep float32 `yaml:"max_step" toml:"max_step"`

	Integration actor.IntegrationSettings `yaml:"integration" toml:"integration"`
	Contact     constraint.Settings       `yaml:"contact" toml:"contact"`
}

func DefaultSettings() Settings {
	return Settings{
		Substeps:    8,
		Iterations:  4,
		MaxStep:     0.1,
		Integration: actor.DefaultIntegrationSettings(),
		Contact:     constraint.DefaultSettings(),
	}
}

// Validate reports the first knob outside of its usable range
func (s Settings) Validate() error {
	switch {
	case s.Substeps < 1:
		return errors.Errorf("substeps must be at least 1, got %d", s.Substeps)
	case s.Iterations < 1:
		return errors.Errorf("iterations must be at least 1, got %d", s.Iterations)
	case s.MaxStep <= 0:
		return errors.Errorf("max_step must be positive, got %v", s.MaxStep)
	}

	integration := s.Integration
	switch {
	case integration.LinearDamping <= 0 || integration.LinearDamping > 1:
		return errors.Errorf("integration.linear_damping must be in (0, 1], got %v", integration.LinearDamping)
	case integration.AngularDamping <= 0 || integration.AngularDamping > 1:
		return errors.Errorf("integration.angular_damping must be in (0, 1], got %v", integration.AngularDamping)
	case integration.MaxAngularVelocity <= 0:
		return errors.Errorf("integration.max_angular_velocity must be positive, got %v", integration.MaxAngularVelocity)
	case integration.RestSpeed < 0 || integration.SleepLinearSpeed < 0 || integration.SleepAngularSpeed < 0:
		return errors.New("integration speeds must not be negative")
	case integration.SleepTime < 0:
		return errors.Errorf("integration.sleep_time must not be negative, got %v", integration.SleepTime)
	}

	contact := s.Contact
	switch {
	case contact.Slop < 0:
		return errors.Errorf("contact.slop must not be negative, got %v", contact.Slop)
	case contact.Percent < 0 || contact.Percent > 1:
		return errors.Errorf("contact.percent must be in [0, 1], got %v", contact.Percent)
	case contact.StabilizationSpeed < 0:
		return errors.Errorf("contact.stabilization_speed must not be negative, got %v", contact.StabilizationSpeed)
	case contact.StabilizationAngularDamping < 0 || contact.StabilizationAngularDamping > 1:
		return errors.Errorf("contact.stabilization_angular_damping must be in [0, 1], got %v", contact.StabilizationAngularDamping)
	case contact.FrictionTorqueScale < 0:
		return errors.Errorf("contact.friction_torque_scale must not be negative, got %v", contact.FrictionTorqueScale)
	}

	return nil
}

// Unmarshal decodes settings over the defaults; format is "yaml" or "toml".
// Keys missing from data keep their default value.
func Unmarshal(data []byte, format string) (Settings, error) {
	settings := DefaultSettings()

	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &settings)
	case "toml":
		err = toml.Unmarshal(data, &settings)
	default:
		return settings, errors.Errorf("unsupported settings format %q", format)
	}
	if err != nil {
		return settings, errors.Wrapf(err, "decoding %s settings", format)
	}

	if err := settings.Validate(); err != nil {
		return settings, errors.Wrap(err, "invalid settings")
	}

	return settings, nil
}

// LoadSettings reads a YAML (.yaml, .yml) or TOML (.toml) settings file
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), errors.Wrapf(err, "reading settings %s", path)
	}

	settings, err := Unmarshal(data, FormatOf(path))
	if err != nil {
		return settings, errors.Wrapf(err, "loading settings %s", path)
	}

	return settings, nil
}

// FormatOf returns the codec name for a file path, from its extension
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
