// Package main is the entry point for ogs-notify.
package main

import (
	"os"

	"github.com/ogs-notify/ogs-notify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
