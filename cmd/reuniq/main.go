// A command line tool that collapses runs of lines matching a regular
// expression down to the first line of each run.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reuniq:", err)
		os.Exit(1)
	}
}
