package scan

import "go.uber.org/atomic"

// A Probe is an Observer that counts the indices folded speculatively during
// a run over n indices.
type Probe struct {
	n          int
	speculated atomic.Int64
}

// NewProbe returns a probe for a run over n indices.
func NewProbe(n int) *Probe {
	return &Probe{n: n}
}

// Speculative implements Observer.
func (p *Probe) Speculative(r Range) {
	p.speculated.Add(int64(r.Len()))
}

// Speculated returns the number of indices folded speculatively so far.
func (p *Probe) Speculated() int64 {
	return p.speculated.Load()
}

// Ratio returns the fraction of the n indices that were folded only once.
// It is 1 for an empty run.
func (p *Probe) Ratio() float64 {
	if p.n == 0 {
		return 1
	}
	return float64(int64(p.n)-p.speculated.Load()) / float64(p.n)
}
