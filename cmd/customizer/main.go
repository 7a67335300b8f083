// Package main is the entry point for the customizer CLI.
package main

import (
	"os"

	"github.com/openscad-forge/customizer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
