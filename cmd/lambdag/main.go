// SPDX-License-Identifier: MIT

// Command lambdag parses a source term, reduces it, and prints the result,
// the thin front end exercising the graph reduction engine the way the
// teacher's cmd/main.go exercises a bart.Lite table.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
