package main

import (
	"os"

	"fuelprice/cmd/fuelctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
