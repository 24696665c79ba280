// Package main provides the sable CLI: train feedforward networks from a
// run file, query trained models, and inspect persisted snapshots.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sable:", err)
		os.Exit(1)
	}
}
