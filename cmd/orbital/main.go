// Package main is the entry point for the orbital CLI.
package main

import (
	"os"

	"github.com/f3rmion/orbital/cmd/orbital/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
