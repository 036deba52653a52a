// Package prefix computes inclusive prefix sums with the parallel scan
// engine.
package prefix

import "github.com/intel/forGoScan/scan"

func body[T scan.Addable](input, output []T) scan.BodyFunc[T] {
	return func(r scan.Range, acc T, final bool) T {
		if !final {
			for _, v := range input[r.Begin:r.End] {
				acc += v
			}
			return acc
		}
		for i := r.Begin; i < r.End; i++ {
			acc += input[i]
			output[i] = acc
		}
		return acc
	}
}

// NewScanner returns a scanner whose runs over len(input) indices write the
// prefix sums of input to output. output must be at least as long as input,
// and may be input itself.
func NewScanner[T scan.Addable](input, output []T, config scan.Config) (*scan.Scanner[T], error) {
	return scan.New[T](body(input, output[:len(input)]), scan.Sum[T]{}, config)
}

func scanInto[T scan.Addable](input, output []T, config scan.Config, measure bool) (float64, error) {
	s, err := NewScanner(input, output, config)
	if err != nil {
		return 0, err
	}
	if measure {
		_, ratio, err := s.Measure(len(input))
		return ratio, err
	}
	_, err = s.Run(len(input))
	return 1, err
}

// Scan returns a new slice whose element i is the sum of input[0] up to and
// including input[i]. input is not modified.
func Scan[T scan.Addable](input []T, config scan.Config) ([]T, error) {
	output := make([]T, len(input))
	if _, err := scanInto(input, output, config, false); err != nil {
		return nil, err
	}
	return output, nil
}

// ScanInPlace replaces every element of buf with the sum of all elements up
// to and including it. Applying ScanInPlace twice does not give the same
// result as applying it once.
func ScanInPlace[T scan.Addable](buf []T, config scan.Config) error {
	_, err := scanInto(buf, buf, config, false)
	return err
}

// ScanWithRatio is like Scan, and also reports the fraction of elements that
// were folded only once (see scan.Scanner.Measure).
func ScanWithRatio[T scan.Addable](input []T, config scan.Config) ([]T, float64, error) {
	output := make([]T, len(input))
	ratio, err := scanInto(input, output, config, true)
	if err != nil {
		return nil, 0, err
	}
	return output, ratio, nil
}
