package main

import (
	"os"

	"github.com/fkhayef/fairsplit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
