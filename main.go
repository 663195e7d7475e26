package main

import (
	"os"

	"github.com/g-s-k/psort/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
