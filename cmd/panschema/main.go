// Package main provides the panschema binary entry point.
// Panschema translates schema definitions between ontology and native
// schema formats through one canonical model.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/c360studio/panschema/commands"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
