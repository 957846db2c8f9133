package analytics

import "github.com/jonathan/jobtracker/internal/types"

// StatusSummary counts applications per status.
type StatusSummary struct {
	Total      int `json:"total" yaml:"total"`
	Applied    int `json:"applied" yaml:"applied"`
	Interviews int `json:"interviews" yaml:"interviews"`
	Offers     int `json:"offers" yaml:"offers"`
	Rejected   int `json:"rejected" yaml:"rejected"`
	Withdrawn  int `json:"withdrawn" yaml:"withdrawn"`
}

// Summarize counts recs by status.
func Summarize(recs []Record) StatusSummary {
	summary := StatusSummary{Total: len(recs)}
	for _, rec := range recs {
		switch rec.Status {
		case types.StatusApplied:
			summary.Applied++
		case types.StatusInterviewScheduled:
			summary.Interviews++
		case types.StatusOffer:
			summary.Offers++
		case types.StatusRejected:
			summary.Rejected++
		case types.StatusWithdrawn:
			summary.Withdrawn++
		}
	}
	return summary
}
