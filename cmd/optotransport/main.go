// Command optotransport is the batch CLI over the analysis toolkit: inspect
// measurement files, derive transport and optical signals, export tables, and
// build summary workbooks.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
