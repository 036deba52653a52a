// Package bench measures the scan engine on a fixed set of cases: prefix
// sums out of place and in place, compaction keeping one in two or one in
// eight elements, and the speculation ratio of prefix sums.
package bench

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/intel/forGoScan/compact"
	"github.com/intel/forGoScan/parallel"
	"github.com/intel/forGoScan/prefix"
	"github.com/intel/forGoScan/scan"
)

// DefaultRuns is the default number of measured runs per case, after one
// warm-up run.
const DefaultRuns = 50

// Case names.
const (
	Scan        = "scan"
	ScanInPlace = "scan-inplace"
	Compact2    = "compact-2"
	Compact8    = "compact-8"
	ScanRatio   = "scan-measure-ratio"
)

var (
	// ErrUnknownCase is returned for a case name not listed by Names.
	ErrUnknownCase = errors.New("bench: unknown case")
	// ErrInvalidSize is returned when Options.Size is not positive.
	ErrInvalidSize = errors.New("bench: input size must be positive")
	// ErrInvalidRuns is returned when Options.Runs is not positive.
	ErrInvalidRuns = errors.New("bench: run count must be positive")
)

// Names returns the names of all cases, sorted.
func Names() []string {
	names := []string{Scan, ScanInPlace, Compact2, Compact8, ScanRatio}
	sort.Strings(names)
	return names
}

// A Case is one benchmark. Prepare restores the state that Execute expects
// and is called before every run; it may be called any number of times.
// Execute performs one run.
type Case interface {
	Prepare()
	Execute() error
}

// Options configure a benchmark.
type Options struct {
	Size int
	Runs int
	Scan scan.Config
}

// DefaultOptions returns options for an input of the given size with
// DefaultRuns runs and the default scan configuration.
func DefaultOptions(size int) Options {
	return Options{
		Size: size,
		Runs: DefaultRuns,
		Scan: scan.DefaultConfig(),
	}
}

// Validate reports configuration errors before anything is allocated.
func (o Options) Validate() error {
	if o.Size <= 0 {
		return errors.Wrapf(ErrInvalidSize, "got %d", o.Size)
	}
	if o.Runs <= 0 {
		return errors.Wrapf(ErrInvalidRuns, "got %d", o.Runs)
	}
	return o.Scan.Validate()
}

// A Benchmark is a Case over generated input.
type Benchmark struct {
	name    string
	prepare func()
	execute func() error
	output  func() []uint64
}

// Name returns the case name of b.
func (b *Benchmark) Name() string {
	return b.name
}

// Prepare implements Case.
func (b *Benchmark) Prepare() {
	if b.prepare != nil {
		b.prepare()
	}
}

// Execute implements Case.
func (b *Benchmark) Execute() error {
	return b.execute()
}

// Output returns the output of the last run.
func (b *Benchmark) Output() []uint64 {
	return b.output()
}

// Checksum returns the wrapping sum of the output of the last run.
func (b *Benchmark) Checksum() uint64 {
	return Checksum(b.output())
}

// Checksum returns the wrapping sum of values.
func Checksum(values []uint64) uint64 {
	return parallel.RangeReduce(0, len(values), 0,
		func(low, high int) (sum uint64) {
			for _, v := range values[low:high] {
				sum += v
			}
			return
		},
		func(x, y uint64) uint64 { return x + y },
	)
}

// NewCase allocates and fills the input of the named case. The ratio case is
// not a timed case; see MeasureRatio.
func NewCase(name string, options Options) (*Benchmark, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	switch name {
	case Scan:
		input := make([]uint64, options.Size)
		output := make([]uint64, options.Size)
		compact.Fill(input)
		s, err := prefix.NewScanner(input, output, options.Scan)
		if err != nil {
			return nil, err
		}
		return &Benchmark{
			name:    name,
			execute: runner(s, options.Size),
			output:  func() []uint64 { return output },
		}, nil

	case ScanInPlace:
		buf := make([]uint64, options.Size)
		s, err := prefix.NewScanner(buf, buf, options.Scan)
		if err != nil {
			return nil, err
		}
		return &Benchmark{
			name:    name,
			prepare: func() { compact.Fill(buf) },
			execute: runner(s, options.Size),
			output:  func() []uint64 { return buf },
		}, nil

	case Compact2, Compact8:
		ratio := 2
		if name == Compact8 {
			ratio = 8
		}
		mask, err := compact.MaskForRatio(ratio)
		if err != nil {
			return nil, err
		}
		input := make([]uint64, options.Size)
		output := make([]uint64, options.Size)
		compact.Fill(input)
		s, err := compact.NewScanner(input, output, func(v uint64) bool {
			return compact.Predicate(mask, v)
		}, options.Scan)
		if err != nil {
			return nil, err
		}
		var count int
		return &Benchmark{
			name: name,
			execute: func() (err error) {
				count, err = s.Run(options.Size)
				return
			},
			output: func() []uint64 { return output[:count] },
		}, nil

	default:
		return nil, errors.Wrapf(ErrUnknownCase, "%q", name)
	}
}

func runner[T any](s *scan.Scanner[T], n int) func() error {
	return func() error {
		_, err := s.Run(n)
		return err
	}
}

// Time runs c once to warm up and then runs times, calling Prepare before
// every run, and returns the mean duration of the measured runs. Prepare is
// not timed.
func Time(c Case, runs int) (time.Duration, error) {
	if runs <= 0 {
		return 0, errors.Wrapf(ErrInvalidRuns, "got %d", runs)
	}
	c.Prepare()
	if err := c.Execute(); err != nil {
		return 0, errors.Wrap(err, "warm-up run failed")
	}
	var total time.Duration
	for i := 0; i < runs; i++ {
		c.Prepare()
		before := time.Now()
		if err := c.Execute(); err != nil {
			return 0, errors.Wrapf(err, "run %d failed", i)
		}
		total += time.Since(before)
	}
	return total / time.Duration(runs), nil
}

// MeasureRatio scans a generated input of options.Size elements once to warm
// up and options.Runs more times, and returns the mean fraction of elements
// that were not folded speculatively.
//
// The input is generated once. Out-of-place scans do not modify it, so no
// state is restored between samples.
func MeasureRatio(options Options) (float64, error) {
	if err := options.Validate(); err != nil {
		return 0, err
	}
	input := make([]uint64, options.Size)
	output := make([]uint64, options.Size)
	compact.Fill(input)
	s, err := prefix.NewScanner(input, output, options.Scan)
	if err != nil {
		return 0, err
	}
	if _, _, err := s.Measure(options.Size); err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < options.Runs; i++ {
		_, ratio, err := s.Measure(options.Size)
		if err != nil {
			return 0, err
		}
		jww.DEBUG.Printf("bench: ratio sample %d: %f", i, ratio)
		sum += ratio
	}
	return sum / float64(options.Runs), nil
}
