package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobtracker/internal/analytics"
	"github.com/jonathan/jobtracker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintSummary(analytics.StatusSummary{Total: 4, Applied: 2, Interviews: 1, Offers: 1})

	out := buf.String()
	assert.Contains(t, out, "PIPELINE SUMMARY")
	assert.Contains(t, out, "Total:       4")
	assert.Contains(t, out, "Offers:      1")
}

func TestPrintVelocity(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintVelocity(analytics.VelocityResult{AverageResponseTime: 5, InterviewConversionRate: 50, StaleApplications: 1})

	out := buf.String()
	assert.Contains(t, out, "Average response time:  5 days")
	assert.Contains(t, out, "Interview conversion:   50%")
	assert.Contains(t, out, "Stale (over 14 days):   1")
}

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintInsights(analytics.InsightsResult{
		TopPriorities: []analytics.Priority{{Message: "Applied application needs attention", Action: "Consider sending a follow-up email"}},
		Strengths:     []string{"Strong interview conversion rate - your applications stand out!"},
		NextActions:   []string{"a", "b", "c", "d", "e", "f", "g"},
	})

	out := buf.String()
	assert.Contains(t, out, "1. Applied application needs attention")
	assert.Contains(t, out, "→ Consider sending a follow-up email")
	assert.Contains(t, out, "Strengths:")
	assert.NotContains(t, out, "Improvements:")
	assert.Contains(t, out, "• e")
	assert.NotContains(t, out, "• f")
	assert.Contains(t, out, "... and 2 more")
}

func TestPrintInsights_Empty(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintInsights(analytics.InsightsResult{})

	assert.Contains(t, buf.String(), "No insights yet")
}

func TestPrintApplications(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintApplications([]analytics.ApplicationReport{
		{
			Company:  "Acme",
			Position: "SRE",
			Health: analytics.HealthResult{
				Score:            55,
				Category:         analytics.CategoryNeedsAttention,
				Recommendation:   "Consider sending a follow-up email",
				DaysSinceApplied: 23,
				Status:           types.StatusApplied,
			},
		},
		{
			Company:          "Globex",
			Position:         "Backend",
			Health:           analytics.HealthResult{Score: 100, Category: analytics.CategoryExcellent, Status: types.StatusInterviewScheduled},
			OfferProbability: 30,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "APPLICATIONS (2)")
	assert.Contains(t, out, "Acme · SRE")
	assert.Contains(t, out, "Status: Applied (23 days)")
	assert.Contains(t, out, "Health: 55/100 needs-attention")
	assert.Contains(t, out, "Next: Consider sending a follow-up email")
	assert.Contains(t, out, "Offer probability: 30%")
}

func TestPrintApplications_Empty(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintApplications(nil)

	assert.Contains(t, buf.String(), "No applications tracked")
}

func TestPrintBox_TruncatesAndAligns(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	NewPrinter(&buf).PrintReport(analytics.BuildReport(nil, now))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Evaluated at 2026-03-15 12:00 UTC\n"))
	for _, title := range []string{"PIPELINE SUMMARY", "PIPELINE VELOCITY", "INSIGHTS", "APPLICATIONS"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "Start applying to jobs that match your skills")
}
