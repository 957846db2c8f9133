// Package observability renders analytics results as boxed text for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobtracker/internal/analytics"
)

const (
	boxWidth       = 72
	maxItemsToShow = 5
)

// Printer writes human-readable analytics reports.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(line string, width int) string {
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	return string([]rune(line)[:width-3]) + "..."
}

//nolint:errcheck // terminal output
func (p *Printer) printBox(title, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary prints status counts.
func (p *Printer) PrintSummary(s analytics.StatusSummary) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total:       %d\n", s.Total)
	fmt.Fprintf(&sb, "Applied:     %d\n", s.Applied)
	fmt.Fprintf(&sb, "Interviews:  %d\n", s.Interviews)
	fmt.Fprintf(&sb, "Offers:      %d\n", s.Offers)
	fmt.Fprintf(&sb, "Rejected:    %d\n", s.Rejected)
	fmt.Fprintf(&sb, "Withdrawn:   %d", s.Withdrawn)
	p.printBox("PIPELINE SUMMARY", sb.String())
}

// PrintVelocity prints pipeline velocity metrics.
func (p *Printer) PrintVelocity(v analytics.VelocityResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Average response time:  %d days\n", v.AverageResponseTime)
	fmt.Fprintf(&sb, "Interview conversion:   %d%%\n", v.InterviewConversionRate)
	fmt.Fprintf(&sb, "Offer conversion:       %d%%\n", v.OfferConversionRate)
	fmt.Fprintf(&sb, "Rejection rate:         %d%%\n", v.RejectionRate)
	fmt.Fprintf(&sb, "Awaiting reply:         %d\n", v.ActiveApplications)
	fmt.Fprintf(&sb, "Stale (over 14 days):   %d", v.StaleApplications)
	p.printBox("PIPELINE VELOCITY", sb.String())
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// PrintInsights prints priorities, strengths, improvements and next actions.
func (p *Printer) PrintInsights(in analytics.InsightsResult) {
	var sb strings.Builder

	if len(in.TopPriorities) > 0 {
		sb.WriteString("Top priorities:\n")
		for i, prio := range in.TopPriorities {
			fmt.Fprintf(&sb, "  %d. %s\n     → %s\n", i+1, prio.Message, prio.Action)
		}
		sb.WriteString("\n")
	}
	writeList(&sb, "Strengths", in.Strengths)
	writeList(&sb, "Improvements", in.Improvements)
	writeList(&sb, "Next actions", in.NextActions)

	content := strings.TrimSuffix(sb.String(), "\n\n")
	if content == "" {
		content = "No insights yet"
	}
	p.printBox("INSIGHTS", content)
}

// PrintApplications prints one block per application with its health and offer odds.
func (p *Printer) PrintApplications(apps []analytics.ApplicationReport) {
	if len(apps) == 0 {
		p.printBox("APPLICATIONS", "No applications tracked")
		return
	}

	var sb strings.Builder
	for i, app := range apps {
		fmt.Fprintf(&sb, "%s · %s\n", app.Company, app.Position)
		fmt.Fprintf(&sb, "  Status: %s (%d days)\n", app.Health.Status, app.Health.DaysSinceApplied)
		fmt.Fprintf(&sb, "  Health: %d/100 %s\n", app.Health.Score, app.Health.Category)
		fmt.Fprintf(&sb, "  Offer probability: %d%%\n", app.OfferProbability)
		if app.Health.Recommendation != "" {
			fmt.Fprintf(&sb, "  Next: %s\n", app.Health.Recommendation)
		}
		if i < len(apps)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("APPLICATIONS (%d)", len(apps)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport prints every section of r.
//
//nolint:errcheck // terminal output
func (p *Printer) PrintReport(r analytics.Report) {
	fmt.Fprintf(p.out, "Evaluated at %s\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	p.PrintSummary(r.Summary)
	p.PrintVelocity(r.Velocity)
	p.PrintInsights(r.Insights)
	p.PrintApplications(r.Applications)
}
