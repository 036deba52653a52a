// Command scanbench times the parallel scan engine on the cases of package
// bench.
//
// Usage:
//
//	scanbench run [flags] CASE...
//	scanbench cases
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
