package analytics

import (
	"time"

	"github.com/jonathan/jobtracker/internal/types"
)

// VelocityResult summarizes how the pipeline is moving. Rates are whole percentages.
type VelocityResult struct {
	AverageResponseTime     int `json:"averageResponseTime" yaml:"averageResponseTime"`
	InterviewConversionRate int `json:"interviewConversionRate" yaml:"interviewConversionRate"`
	OfferConversionRate     int `json:"offerConversionRate" yaml:"offerConversionRate"`
	RejectionRate           int `json:"rejectionRate" yaml:"rejectionRate"`
	ActiveApplications      int `json:"activeApplications" yaml:"activeApplications"`
	StaleApplications       int `json:"staleApplications" yaml:"staleApplications"`
}

// CalculateVelocity aggregates the pipeline at instant now. An empty pipeline yields all zeros.
//
// Response time is measured from the applied date to now for every record that has left
// Applied; records carry no separate response date.
func CalculateVelocity(recs []Record, now time.Time) VelocityResult {
	if len(recs) == 0 {
		return VelocityResult{}
	}

	var (
		responded, respondedDays     int
		interviews, offers, rejected int
		active, stale                int
	)

	for _, rec := range recs {
		days := DaysSince(rec.DateApplied, now)

		switch rec.Status {
		case types.StatusApplied:
			if days > staleAfterDays {
				stale++
			} else {
				active++
			}
		case types.StatusInterviewScheduled:
			interviews++
		case types.StatusOffer:
			offers++
		case types.StatusRejected:
			rejected++
		}

		if rec.Status != types.StatusApplied {
			responded++
			respondedDays += days
		}
	}

	avg := 0
	if responded > 0 {
		avg = roundHalfUp(float64(respondedDays) / float64(responded))
	}

	total := len(recs)
	return VelocityResult{
		AverageResponseTime:     avg,
		InterviewConversionRate: percentOf(interviews, total),
		OfferConversionRate:     percentOf(offers, total),
		RejectionRate:           percentOf(rejected, total),
		ActiveApplications:      active,
		StaleApplications:       stale,
	}
}
