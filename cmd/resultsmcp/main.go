// Package main provides the entry point for the resultsmcp CLI.
package main

import (
	"os"

	"github.com/scio-ly/resultsmcp/cmd/resultsmcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
