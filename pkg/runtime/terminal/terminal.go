package terminal

import (
	"io"
	"os"

	"github.com/de-tools/feature-tracker/pkg/runtime/terminal/commands"
	"github.com/de-tools/feature-tracker/pkg/runtime/terminal/export"

	"github.com/de-tools/feature-tracker/pkg/services/metrics"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry metrics.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry metrics.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = commands.NewReportCmd(cli.registry, cli.reporter)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}
