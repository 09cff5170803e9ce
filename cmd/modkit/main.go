package main

import (
	"os"

	"github.com/leeforge/modkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
