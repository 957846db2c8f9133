package analytics

import (
	"fmt"
	"time"

	"github.com/jonathan/jobtracker/internal/types"
)

// Priority is an application that needs the user's attention.
type Priority struct {
	Message string `json:"message" yaml:"message"`
	Action  string `json:"action" yaml:"action"`
}

// InsightsResult is the advice derived from the whole pipeline.
type InsightsResult struct {
	TopPriorities []Priority `json:"topPriorities" yaml:"topPriorities"`
	Strengths     []string   `json:"strengths" yaml:"strengths"`
	Improvements  []string   `json:"improvements" yaml:"improvements"`
	NextActions   []string   `json:"nextActions" yaml:"nextActions"`
}

const (
	maxTopPriorities = 3

	strongInterviewRate = 20
	strongOfferRate     = 10
	highRejectionRate   = 50
	manyStale           = 5
	lowInterviewRate    = 10
	lowRateMinPipeline  = 10
	thinPipelineApplied = 5
)

func newInsights() InsightsResult {
	return InsightsResult{
		TopPriorities: []Priority{},
		Strengths:     []string{},
		Improvements:  []string{},
		NextActions:   []string{},
	}
}

// GenerateInsights derives priorities, strengths, improvements and next actions at instant now.
// Priorities keep the input order and stop at three.
func GenerateInsights(recs []Record, now time.Time) InsightsResult {
	insights := newInsights()

	if len(recs) == 0 {
		insights.NextActions = append(insights.NextActions, "Start applying to jobs that match your skills")
		return insights
	}

	velocity := CalculateVelocity(recs, now)

	for _, rec := range recs {
		if len(insights.TopPriorities) == maxTopPriorities {
			break
		}
		health := CalculateHealth(rec, now)
		if health.Category.NeedsAttention() {
			insights.TopPriorities = append(insights.TopPriorities, Priority{
				Message: fmt.Sprintf("%s application needs attention", rec.Status),
				Action:  health.Recommendation,
			})
		}
	}

	if velocity.InterviewConversionRate >= strongInterviewRate {
		insights.Strengths = append(insights.Strengths, "Strong interview conversion rate - your applications stand out!")
	}
	if velocity.OfferConversionRate >= strongOfferRate {
		insights.Strengths = append(insights.Strengths, "Excellent offer rate - keep up the great work!")
	}

	if velocity.RejectionRate > highRejectionRate {
		insights.Improvements = append(insights.Improvements, "High rejection rate - consider refining your resume or targeting better-fit roles")
	}
	if velocity.StaleApplications > manyStale {
		insights.Improvements = append(insights.Improvements, fmt.Sprintf("%d stale applications - time for follow-ups", velocity.StaleApplications))
	}
	if velocity.InterviewConversionRate < lowInterviewRate && len(recs) > lowRateMinPipeline {
		insights.Improvements = append(insights.Improvements, "Low interview rate - review application quality and targeting")
	}

	interviews, applied := 0, 0
	for _, rec := range recs {
		switch rec.Status {
		case types.StatusInterviewScheduled:
			interviews++
		case types.StatusApplied:
			applied++
		}
	}

	if interviews > 0 {
		insights.NextActions = append(insights.NextActions, fmt.Sprintf("Prepare for %d upcoming interview(s)", interviews))
	}
	if velocity.StaleApplications > 0 {
		insights.NextActions = append(insights.NextActions, "Send follow-up emails for aging applications")
	}
	if applied < thinPipelineApplied {
		insights.NextActions = append(insights.NextActions, "Apply to more positions to maintain pipeline momentum")
	}

	return insights
}
