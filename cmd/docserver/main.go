package main

import (
	"os"

	"github.com/the-dev-tools/dev-tools/packages/docserver/cmd/docserver/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
