//go:build linux

package affinity

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func pinPlatform(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return errors.Wrapf(err, "affinity: cannot pin thread to cpu %d", cpu)
	}
	return nil
}
