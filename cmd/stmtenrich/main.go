package main

import (
	"os"

	"github.com/cardlens/statement-enricher/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
