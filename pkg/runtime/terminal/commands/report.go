package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
	"github.com/de-tools/feature-tracker/pkg/runtime/terminal/export"
	"github.com/de-tools/feature-tracker/pkg/services/config"
	"github.com/de-tools/feature-tracker/pkg/services/metrics"
	"github.com/de-tools/feature-tracker/pkg/services/report"

	"github.com/spf13/cobra"
)

type ReportCmd struct {
	configPath string
	full       bool
	registry   metrics.Registry
	reporter   *export.Reporter
}

func NewReportCmd(registry metrics.Registry, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:          "featuretracker <week|month> <start-date> <end-date> <page-path> <feature-code> [comparison-feature-code...]",
		Short:        "Compare feature usage over a date interval",
		Args:         cobra.MinimumNArgs(5),
		SilenceUsage: true,
		RunE:         rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "config.yaml", "Path to the YAML configuration file")
	cmd.Flags().BoolVar(&rc.full, "full", false,
		"Include aggregate totals, feature shares and conversion rates")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	// Argument validation happens before any configuration or network work.
	unit, err := domain.ParseIntervalUnit(args[0])
	if err != nil {
		return err
	}

	start, end := args[1], args[2]
	pagePath := args[3]
	primary := args[4]
	comparisons := args[5:]

	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}

	source, err := rc.registry.Create(cfg.Provider, cfg)
	if err != nil {
		return fmt.Errorf("failed to create a metrics source for provider %q: %w", cfg.Provider, err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	if rc.full {
		dashboard, err := report.NewDashboardBuilder(source).
			Build(ctx, unit, start, end, pagePath, primary, comparisons)
		if err != nil {
			return err
		}
		return rc.reporter.HandleDashboard(dashboard)
	}

	usage, err := report.NewBuilder(source).
		Build(ctx, unit, start, end, pagePath, primary, comparisons)
	if err != nil {
		return err
	}
	return rc.reporter.Handle(usage)
}
