package main

import (
	"fmt"
	"os"

	"github.com/apresai/vidblueprint/internal/cli"
	"github.com/apresai/vidblueprint/internal/config"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
