package main

import (
	"os"

	"github.com/iwvelando/calcsuite/cmd/calcsuite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
