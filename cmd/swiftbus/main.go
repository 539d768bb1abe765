package main

import (
	"os"

	"github.com/swiftbus/api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
