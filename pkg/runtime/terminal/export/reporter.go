package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/services/denials"
)

// Reporter renders an analysis to the console: a metric summary followed by
// the detailed denial table, newest first.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a console reporter.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

const summaryTmpl = `
{{.Title}} ({{.Period.Duration}} days)
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}

{{range .Sections}}=== {{.Title}} ===
{{range .Details}}- {{.Name}}: {{.Value}}
{{end}}
{{end}}`

func (c *Reporter) Handle(result domain.PipelineResult) error {
	c.printDiagnostics(result.Diagnostics)

	snapshot := result.Snapshot
	if snapshot.TotalCount == 0 {
		return nil
	}

	report := buildReport(snapshot)
	t, err := template.New("report").Parse(summaryTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Execute(c.writer, report); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	return c.renderTable(snapshot)
}

func (c *Reporter) printDiagnostics(diagnostics []domain.Diagnostic) {
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, d := range diagnostics {
		switch d.Severity {
		case domain.SeverityError:
			fmt.Fprintln(c.writer, red(d.Message))
		case domain.SeverityWarning:
			fmt.Fprintln(c.writer, yellow(d.Message))
		default:
			fmt.Fprintln(c.writer, d.Message)
		}
	}
}

func buildReport(s domain.AggregateSnapshot) *domain.Report {
	metrics := domain.ReportSection{
		Title: "Key Metrics",
		Details: []domain.ReportDetail{
			{Name: "Total Denials", Value: formatInt(s.TotalCount)},
			{Name: "Total Denied Amount", Value: formatMoney(s.TotalAmount, 0)},
			{Name: "Average Denial", Value: formatMoney(s.AverageAmount, 0)},
			{Name: "Est. Denial Rate", Value: fmt.Sprintf("%.1f%%", s.EstimatedRate*100)},
		},
	}

	trend := domain.ReportSection{Title: "Denial Trends (weekly)"}
	for _, p := range s.WeeklySeries {
		trend.Details = append(trend.Details, domain.ReportDetail{
			Name:  p.WeekStart.Format("2006-01-02"),
			Value: formatMoney(p.Amount, 2),
		})
	}

	reasons := domain.ReportSection{Title: "Top Denial Reasons"}
	for _, g := range s.TopReasons {
		reasons.Details = append(reasons.Details, domain.ReportDetail{
			Name:  g.Value,
			Value: formatInt(g.Count),
		})
	}

	payers := domain.ReportSection{Title: "Denials by Payer"}
	for _, g := range s.TopPayers {
		payers.Details = append(payers.Details, domain.ReportDetail{
			Name:  g.Value,
			Value: formatInt(g.Count),
		})
	}

	return &domain.Report{
		Title:       "Denials Management Report",
		Period:      s.Period,
		Sections:    []domain.ReportSection{metrics, trend, reasons, payers},
		TotalAmount: s.TotalAmount,
		Currency:    "USD",
	}
}

func (c *Reporter) renderTable(s domain.AggregateSnapshot) error {
	fmt.Fprintln(c.writer, "=== Detailed Denials List ===")

	table := tablewriter.NewWriter(c.writer)
	table.Header([]string{"Date", "Patient", "Payer", "Reason", "Amount", "Invoice"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range denials.RecordsByDateDesc(s.Records) {
		data = append(data, []string{
			r.Date.Format("2006-Jan-02"),
			r.PatientID,
			r.PayerName,
			r.DenialReason,
			formatMoney(r.DenialAmount, 2),
			r.InvoiceID,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
