// Package main is the entry point for the docindex binary.
package main

import (
	"os"

	"docindex/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
