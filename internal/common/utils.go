/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/
package common

import (
	"fmt"
	"os"
)

// LogError prints a message to stderr. With critic at true the program
// stops with exit code 1.
func LogError(message string, critic bool) {
	fmt.Fprintf(os.Stderr, "%s\n", message)

	if critic {
		os.Exit(1)
	}
}

// LogInfo prints a progress or status line to stdout.
func LogInfo(message string) {
	fmt.Printf("%s\n", message)
}
