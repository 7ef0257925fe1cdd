package main

import (
	"os"

	"github.com/fincity/investing-engine/cmd/investd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
