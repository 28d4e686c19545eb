// ztimerctl drives ztimer-go's hierarchical timer scheduler from the
// command line.
//
// Commands:
//
//	simulate  - replay the scheduler's core scenarios against a mock backend
//	watch     - arm timers from keypresses against a live clock backend
//	version   - print version information
package main

import (
	"fmt"
	"os"

	"ztimer-go/cmd/ztimerctl"
)

func main() {
	if err := ztimerctl.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
