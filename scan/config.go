package scan

import (
	"github.com/pkg/errors"

	"github.com/intel/forGoScan/internal"
)

// DefaultGrain is the default maximum number of indices in a leaf.
const DefaultGrain = 1024

// ErrInvalidConfig is the cause of all errors returned by Config.Validate.
var ErrInvalidConfig = errors.New("scan: invalid configuration")

// Config holds the tunables of a Scanner.
type Config struct {
	// Grain is the maximum number of indices in a leaf. Smaller grains give
	// idle workers more opportunities to help, at a higher per-leaf cost.
	Grain int
	// Workers is the number of worker goroutines of a run. With a single
	// worker the whole range is folded as one leaf.
	Workers int
	// Pin locks each worker to an OS thread pinned to its own CPU.
	Pin bool
}

// DefaultConfig returns a configuration with DefaultGrain and one worker per
// CPU.
func DefaultConfig() Config {
	return Config{
		Grain:   DefaultGrain,
		Workers: internal.DefaultWorkers(),
	}
}

// Validate reports an error wrapping ErrInvalidConfig if the grain or the
// worker count is not positive.
func (c Config) Validate() error {
	if c.Grain <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "grain size %d is not positive", c.Grain)
	}
	if c.Workers <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "worker count %d is not positive", c.Workers)
	}
	return nil
}
