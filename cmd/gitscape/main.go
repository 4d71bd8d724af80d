package main

import (
	"os"

	"github.com/gitscape/gitscape/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
