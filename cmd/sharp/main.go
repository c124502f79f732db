// ==============================================================================================
// FILE: cmd/sharp/main.go
// ==============================================================================================
// Entry point for the sharp binary. All flag parsing and command logic lives in
// cmd/sharp/cmd; main only hands control to it and converts a returned error to
// an exit code (spec.md §6: exit 1 on misuse, 0 otherwise).
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/Hrpavi7/SharpScript/cmd/sharp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
