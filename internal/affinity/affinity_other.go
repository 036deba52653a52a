//go:build !linux

package affinity

import "github.com/pkg/errors"

func pinPlatform(cpu int) error {
	return errors.Errorf("affinity: pinning to cpu %d is not supported on this platform", cpu)
}
