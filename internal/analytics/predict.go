package analytics

import (
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobtracker/internal/types"
)

const (
	emptyPipelineBase     = 50.0
	interviewBoost        = 30.0
	freshApplicationBoost = 10.0
	detailedNotesBoost    = 5.0

	detailedNotesLength = 50
)

// PredictOfferProbability estimates the chance, as a whole percentage, that target ends in an offer.
// The base rate is the pipeline's historical offer rate, or 50 when there is no history.
// Rounding happens once, after all adjustments.
func PredictOfferProbability(recs []Record, target Record, now time.Time) int {
	probability := emptyPipelineBase
	if len(recs) > 0 {
		offers := 0
		for _, rec := range recs {
			if rec.Status == types.StatusOffer {
				offers++
			}
		}
		probability = float64(offers) / float64(len(recs)) * 100
	}

	switch {
	case target.Status == types.StatusInterviewScheduled:
		probability += interviewBoost
	case target.Status == types.StatusApplied && DaysSince(target.DateApplied, now) < pendingAfterDays:
		probability += freshApplicationBoost
	}

	if utf8.RuneCountInString(target.Notes) > detailedNotesLength {
		probability += detailedNotesBoost
	}

	return clamp(roundHalfUp(probability), minScore, maxScore)
}
