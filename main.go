package main

import (
	"os"

	"github.com/autopropelidos/portal/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
