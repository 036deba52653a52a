package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	jww "github.com/spf13/jwalterweatherman"
)

// A Result summarizes one benchmark.
type Result struct {
	Case     string        `json:"case"`
	Size     int           `json:"size"`
	Workers  int           `json:"workers"`
	Grain    int           `json:"grain"`
	Runs     int           `json:"runs"`
	Mean     time.Duration `json:"mean_ns,omitempty"`
	Ratio    float64       `json:"ratio,omitempty"`
	Checksum uint64        `json:"checksum,omitempty"`
}

// String formats r as a single number: the mean time in microseconds for
// timed cases, the ratio for the ratio case.
func (r Result) String() string {
	if r.Case == ScanRatio {
		return fmt.Sprintf("%f", r.Ratio)
	}
	return fmt.Sprint(r.Mean.Microseconds())
}

// Run runs the named case with options.
func Run(name string, options Options) (Result, error) {
	result := Result{
		Case:    name,
		Size:    options.Size,
		Workers: options.Scan.Workers,
		Grain:   options.Scan.Grain,
		Runs:    options.Runs,
	}
	if name == ScanRatio {
		ratio, err := MeasureRatio(options)
		if err != nil {
			return Result{}, err
		}
		result.Ratio = ratio
		return result, nil
	}

	b, err := NewCase(name, options)
	if err != nil {
		return Result{}, err
	}
	jww.INFO.Printf("bench: running %s with n=%d workers=%d grain=%d runs=%d",
		name, options.Size, options.Scan.Workers, options.Scan.Grain, options.Runs)
	mean, err := Time(b, options.Runs)
	if err != nil {
		return Result{}, err
	}
	result.Mean = mean
	result.Checksum = b.Checksum()
	return result, nil
}

// WriteJSON writes results to w as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
