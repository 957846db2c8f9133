package analytics

import "time"

// ApplicationReport is the per-application part of a Report.
type ApplicationReport struct {
	Company          string       `json:"company" yaml:"company"`
	Position         string       `json:"position" yaml:"position"`
	Health           HealthResult `json:"health" yaml:"health"`
	OfferProbability int          `json:"offerProbability" yaml:"offerProbability"`
}

// Report bundles every analytics result for one pipeline at a single instant.
type Report struct {
	GeneratedAt  time.Time           `json:"generatedAt" yaml:"generatedAt"`
	Summary      StatusSummary       `json:"summary" yaml:"summary"`
	Velocity     VelocityResult      `json:"velocity" yaml:"velocity"`
	Insights     InsightsResult      `json:"insights" yaml:"insights"`
	Applications []ApplicationReport `json:"applications" yaml:"applications"`
}

// BuildReport evaluates recs at now. Applications keep the input order.
func BuildReport(recs []Record, now time.Time) Report {
	report := Report{
		GeneratedAt:  now,
		Summary:      Summarize(recs),
		Velocity:     CalculateVelocity(recs, now),
		Insights:     GenerateInsights(recs, now),
		Applications: make([]ApplicationReport, 0, len(recs)),
	}
	for _, rec := range recs {
		report.Applications = append(report.Applications, ApplicationReport{
			Company:          rec.Company,
			Position:         rec.Position,
			Health:           CalculateHealth(rec, now),
			OfferProbability: PredictOfferProbability(recs, rec, now),
		})
	}
	return report
}
