package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
)

type TableConfig struct {
	MinColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinColumnWidth: 12,
	}
}

// Reporter renders reports as aligned text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	tmpl := `
Feature Usage Report ({{.Days}} days)

Period: {{.Period}}
Page: {{.Page}}
Interval: {{.Unit}}

{{table .Header .Rows}}
`
	view := struct {
		Days   int
		Period string
		Page   string
		Unit   domain.IntervalUnit
		Header []string
		Rows   [][]string
	}{
		Days:   report.Period.Days(),
		Period: report.Period.String(),
		Page:   report.Page,
		Unit:   report.Unit,
		Header: usageHeader(report),
		Rows:   usageRows(report),
	}

	return c.render("report", tmpl, view)
}

func (c *Reporter) HandleDashboard(dashboard *domain.Dashboard) error {
	tmpl := `
Feature Usage Dashboard ({{.Days}} days)

Period: {{.Period}}
Page: {{.Page}}
Features: {{.Features}}

=== Totals ===

Aggregate Unique Visitors: {{number .UniqueVisitors}}
Aggregate Events: {{number .TotalEvents}}
Aggregate Conversion Rate: {{percent .ConversionRate}}

=== Percent Unique Visitors by Feature ===

{{table .ShareHeader .ShareRows}}

=== Activity per {{.Unit}} ===

{{table .IntervalHeader .IntervalRows}}

=== Usage by Feature ===

{{table .UsageHeader .UsageRows}}
`
	view := struct {
		Days           int
		Period         string
		Page           string
		Features       string
		Unit           domain.IntervalUnit
		UniqueVisitors float64
		TotalEvents    float64
		ConversionRate float64
		ShareHeader    []string
		ShareRows      [][]string
		IntervalHeader []string
		IntervalRows   [][]string
		UsageHeader    []string
		UsageRows      [][]string
	}{
		Days:           dashboard.Period.Days(),
		Period:         dashboard.Period.String(),
		Page:           dashboard.Page,
		Features:       strings.Join(dashboard.Features, ", "),
		Unit:           dashboard.Usage.Unit,
		UniqueVisitors: dashboard.UniqueVisitors,
		TotalEvents:    dashboard.TotalEvents,
		ConversionRate: dashboard.ConversionRate,
		ShareHeader:    []string{"Feature", "Visitors", "Percent"},
		ShareRows:      shareRows(dashboard.Shares),
		IntervalHeader: []string{"Bucket", "Events", "Visitors", "Conversion"},
		IntervalRows:   intervalRows(dashboard.Intervals),
		UsageHeader:    usageHeader(dashboard.Usage),
		UsageRows:      usageRows(dashboard.Usage),
	}

	return c.render("dashboard", tmpl, view)
}

func (c *Reporter) render(name, tmpl string, view any) error {
	funcMap := template.FuncMap{
		"table":   c.formatTable,
		"number":  formatNumber,
		"percent": formatPercent,
	}

	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}

// formatTable lays out header and rows with per-column widths sized to the
// widest cell.
func (c *Reporter) formatTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(len(h), c.config.MinColumnWidth)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	separator := "+"
	for _, w := range widths {
		separator += strings.Repeat("-", w+2) + "+"
	}

	formatRow := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf(" %-*s ", widths[i], cell)
		}
		return "|" + strings.Join(parts, "|") + "|"
	}

	lines := []string{separator, formatRow(header), separator}
	for _, row := range rows {
		lines = append(lines, formatRow(row))
	}
	lines = append(lines, separator)

	return strings.Join(lines, "\n")
}

func usageHeader(report *domain.Report) []string {
	header := []string{"Bucket"}
	for _, s := range report.Series() {
		header = append(header, s.FeatureCode)
	}
	return header
}

func usageRows(report *domain.Report) [][]string {
	series := report.Series()
	rows := make([][]string, 0, len(report.Buckets))
	for i, bucket := range report.Buckets {
		row := []string{bucket.Label}
		for _, s := range series {
			row = append(row, formatNumber(s.Values[i]))
		}
		rows = append(rows, row)
	}
	return rows
}

func shareRows(shares []domain.FeatureShare) [][]string {
	rows := make([][]string, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, []string{s.FeatureCode, formatNumber(s.Visitors), formatPercent(s.Percent)})
	}
	return rows
}

func intervalRows(stats []domain.IntervalStat) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Bucket.Label,
			formatNumber(s.Events),
			formatNumber(s.Visitors),
			formatPercent(s.ConversionRate),
		})
	}
	return rows
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
