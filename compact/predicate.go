package compact

import (
	"github.com/cznic/mathutil"
	"github.com/pkg/errors"

	"github.com/intel/forGoScan/parallel"
)

// ErrInvalidRatio is returned by MaskForRatio for ratios that are not
// positive powers of two.
var ErrInvalidRatio = errors.New("compact: ratio must be a positive power of two")

// Randomize maps seed to a pseudo random 32-bit value with one round of
// xorshift.
func Randomize(seed uint64) uint32 {
	seed ^= seed << 13
	seed ^= seed >> 17
	seed ^= seed << 5
	return uint32(seed)
}

// Predicate scrambles value and reports whether all bits of mask are set in
// the result. For a mask of r-1 with r a power of two, roughly one in r
// random values satisfy the predicate.
func Predicate(mask, value uint64) bool {
	value ^= value >> 11
	value ^= value << 7
	value ^= value >> 5
	return value&mask == mask
}

// MaskForRatio returns the mask under which Predicate keeps roughly one in
// ratio values.
func MaskForRatio(ratio int) (uint64, error) {
	if ratio <= 0 || mathutil.PopCountUint64(uint64(ratio)) != 1 {
		return 0, errors.Wrapf(ErrInvalidRatio, "got %d", ratio)
	}
	return uint64(ratio - 1), nil
}

// Fill sets values[i] to Randomize(i), in parallel.
func Fill(values []uint64) {
	parallel.Range(0, len(values), 0, func(low, high int) {
		for i := low; i < high; i++ {
			values[i] = uint64(Randomize(uint64(i)))
		}
	})
}
