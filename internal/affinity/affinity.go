// Package affinity pins the calling OS thread to a logical CPU.
//
// Platform-specific implementations live in files guarded by build tags.
package affinity

import "runtime"

// Pin binds the current OS thread to the given logical CPU. The caller must
// hold the thread with runtime.LockOSThread for the binding to be meaningful.
// On unsupported platforms Pin returns an error and leaves the thread alone.
func Pin(cpu int) error {
	return pinPlatform(cpu % runtime.NumCPU())
}
