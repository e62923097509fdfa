// Package main provides the hqlbridge CLI entrypoint.
package main

import (
	"os"

	"github.com/leapstack-labs/hqlbridge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
