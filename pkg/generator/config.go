package generator

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the value ranges and recursion policy used by a Generator.
type Config struct {
	// MaxDepth bounds descent into containers and models.
	MaxDepth int `yaml:"max_depth"`

	// MinElements and MaxElements bound list, set and map sizes.
	MinElements int `yaml:"min_elements"`
	MaxElements int `yaml:"max_elements"`

	// StringMaxLength trims free-form strings.
	StringMaxLength int `yaml:"string_max_length"`

	IntMin   int     `yaml:"int_min"`
	IntMax   int     `yaml:"int_max"`
	FloatMin float64 `yaml:"float_min"`
	FloatMax float64 `yaml:"float_max"`

	// MinLength and MaxLength apply to constrained strings that omit a bound.
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`

	// TimeOffset is added to Now for datetime and date values.
	TimeOffset time.Duration `yaml:"time_offset"`

	// SmartFields enables the field-name overlay for string fields.
	SmartFields bool `yaml:"smart_fields"`

	// Now is the clock used for datetime and date values.
	Now func() time.Time `yaml:"-"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        3,
		MinElements:     1,
		MaxElements:     2,
		StringMaxLength: 20,
		IntMin:          1,
		IntMax:          1000,
		FloatMin:        1.0,
		FloatMax:        100.0,
		MinLength:       1,
		MaxLength:       20,
		TimeOffset:      24 * time.Hour,
		SmartFields:     true,
		Now:             time.Now,
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth must be >= 0, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.MinElements < 0:
		return fmt.Errorf("%w: min_elements must be >= 0, got %d", ErrInvalidConfig, c.MinElements)
	case c.MaxElements < c.MinElements:
		return fmt.Errorf("%w: max_elements %d is below min_elements %d", ErrInvalidConfig, c.MaxElements, c.MinElements)
	case c.StringMaxLength < 1:
		return fmt.Errorf("%w: string_max_length must be >= 1, got %d", ErrInvalidConfig, c.StringMaxLength)
	case c.IntMax < c.IntMin:
		return fmt.Errorf("%w: int_max %d is below int_min %d", ErrInvalidConfig, c.IntMax, c.IntMin)
	case c.FloatMax < c.FloatMin:
		return fmt.Errorf("%w: float_max %v is below float_min %v", ErrInvalidConfig, c.FloatMax, c.FloatMin)
	case c.MinLength < 0:
		return fmt.Errorf("%w: min_length must be >= 0, got %d", ErrInvalidConfig, c.MinLength)
	}
	return nil
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("generator: read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("generator: decode config %q: %w", path, err)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
