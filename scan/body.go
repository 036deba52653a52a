package scan

// A Body folds the elements of a range into an accumulator.
//
// Scan receives a range, the accumulator value that holds for the index just
// before r.Begin, and a flag that tells whether this is the final invocation
// for r. It returns the accumulator value after r.End-1. The returned value
// must not depend on final. Only final invocations may write outputs, and only
// at indices in r; the outputs at index i must be derived from the running
// accumulator at i.
//
// A Scanner invokes Scan at most twice for the same range: at most once with
// final == false and exactly once with final == true. Invocations for
// disjoint ranges run concurrently.
type Body[T any] interface {
	Scan(r Range, acc T, final bool) T
}

// BodyFunc adapts a function to the Body interface.
type BodyFunc[T any] func(r Range, acc T, final bool) T

// Scan implements Body.
func (f BodyFunc[T]) Scan(r Range, acc T, final bool) T {
	return f(r, acc, final)
}

// A Combiner defines the algebra of a scan. Combine must be associative, and
// Identity must be its neutral element. Combine is only ever called with the
// left operand covering indices before those of the right operand, so it does
// not need to be commutative.
type Combiner[T any] interface {
	Identity() T
	Combine(left, right T) T
}

// Monoid adapts a neutral element and an associative join function to the
// Combiner interface.
type Monoid[T any] struct {
	Zero T
	Join func(left, right T) T
}

// Identity implements Combiner.
func (m Monoid[T]) Identity() T {
	return m.Zero
}

// Combine implements Combiner.
func (m Monoid[T]) Combine(left, right T) T {
	return m.Join(left, right)
}

// Addable is satisfied by the numeric types Sum can add.
type Addable interface {
	~uint | ~int | ~uintptr |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// Sum is the Combiner of prefix sums. Floating point addition is not exactly
// associative; results for float types may differ in the last bits between
// runs with different worker counts.
type Sum[T Addable] struct{}

// Identity implements Combiner.
func (Sum[T]) Identity() (zero T) {
	return
}

// Combine implements Combiner.
func (Sum[T]) Combine(left, right T) T {
	return left + right
}
