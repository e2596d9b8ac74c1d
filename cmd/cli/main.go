package main

import (
	"fmt"
	"os"

	"github.com/de-tools/feature-tracker/pkg/runtime/terminal"
	"github.com/de-tools/feature-tracker/pkg/services/config"
	"github.com/de-tools/feature-tracker/pkg/services/metrics"
	"github.com/de-tools/feature-tracker/pkg/services/metrics/plausible"
)

func main() {
	registry := metrics.NewRegistry()
	if err := registry.Register(config.DefaultProvider, plausible.SourceFactory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
