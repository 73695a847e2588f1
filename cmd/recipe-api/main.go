// Command recipe-api serves the recipe HTTP API and carries its maintenance
// commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "recipe-api: %v\n", err)
		os.Exit(1)
	}
}
