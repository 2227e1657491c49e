package narrowphase

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// OrientedBoxMode selects how pairs of boxes involving an oriented box are handled.
type OrientedBoxMode string

const (
	// OrientedBoxDisabled always reports "no collision" for OBB-OBB and AABB-OBB pairs.
	OrientedBoxDisabled OrientedBoxMode = "disabled"
	// OrientedBoxSAT runs a 15 axis separating axis test for those pairs.
	OrientedBoxSAT OrientedBoxMode = "sat"
)

const (
	// DefaultMaxRayLength bounds the segment standing in for a ray in capsule ray tests.
	DefaultMaxRayLength = 10000.0
	DEFAULT_WORKERS     = 1
)

// Config tunes a Detector. The zero value is not valid, start from DefaultConfig.
type Config struct {
	OrientedBoxPairs OrientedBoxMode `yaml:"oriented_box_pairs"`
	MaxRayLength     float64         `yaml:"max_ray_length"`
	Workers          int             `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		OrientedBoxPairs: OrientedBoxDisabled,
		MaxRayLength:     DefaultMaxRayLength,
		Workers:          DEFAULT_WORKERS,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error

	switch c.OrientedBoxPairs {
	case OrientedBoxDisabled, OrientedBoxSAT:
	default:
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "oriented_box_pairs %q", c.OrientedBoxPairs))
	}
	if c.MaxRayLength <= 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "max_ray_length %v must be positive", c.MaxRayLength))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "workers %d must not be negative", c.Workers))
	}

	return err
}

// LoadConfig reads a YAML configuration. Missing fields keep their default value.
func LoadConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "failed to decode narrowphase config")
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}
