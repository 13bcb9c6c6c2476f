// Package main provides the entry point for the phonet CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/phonet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
