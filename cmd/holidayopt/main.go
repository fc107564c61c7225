package main

import (
	"os"

	"github.com/wonny/holidayopt/cmd/holidayopt/commands"
)

// main is the entry point for the holidayopt CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/holidayopt [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
