package internal

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// DefaultWorkers returns the number of workers used when a configuration does
// not name one explicitly.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		if err, isError := p.(error); isError {
			return fmt.Errorf("%w\n%s\nrethrown at", err, debug.Stack())
		}
		return fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
	}
	return nil
}
