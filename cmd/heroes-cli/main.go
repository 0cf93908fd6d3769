package main

import (
	"os"

	"github.com/tourofheroes/heroes/cmd/heroes-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
