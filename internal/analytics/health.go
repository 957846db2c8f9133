package analytics

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobtracker/internal/types"
)

// Category buckets a health score.
type Category string

const (
	CategoryExcellent      Category = "excellent"
	CategoryGood           Category = "good"
	CategoryNeedsAttention Category = "needs-attention"
	CategoryCritical       Category = "critical"
)

// NeedsAttention reports whether the category warrants a priority entry.
func (c Category) NeedsAttention() bool {
	return c == CategoryNeedsAttention || c == CategoryCritical
}

// HealthResult is the health assessment of one application.
type HealthResult struct {
	Score            int                     `json:"score" yaml:"score"`
	Category         Category                `json:"category" yaml:"category"`
	Factors          []string                `json:"factors" yaml:"factors"`
	Recommendation   string                  `json:"recommendation" yaml:"recommendation"`
	DaysSinceApplied int                     `json:"daysSinceApplied" yaml:"daysSinceApplied"`
	Status           types.ApplicationStatus `json:"status" yaml:"status"`
}

const (
	maxScore = 100
	minScore = 0

	agingPenalty      = 30
	pendingPenalty    = 15
	rejectedPenalty   = 100
	withdrawnPenalty  = 50
	interviewBonus    = 20
	lowNotesPenalty   = 10
	missingURLPenalty = 5

	minEngagedNotesLength = 10
)

// categoryFor maps a clamped score to its category.
func categoryFor(score int) Category {
	switch {
	case score >= 80:
		return CategoryExcellent
	case score >= 60:
		return CategoryGood
	case score >= 40:
		return CategoryNeedsAttention
	default:
		return CategoryCritical
	}
}

// CalculateHealth scores a single application at instant now.
//
// Rules run in a fixed order and a later rule's recommendation replaces an earlier one.
// An Offer resets the score to the maximum before the engagement and preparedness
// penalties, so an offer with no notes and no link still ends at 85.
func CalculateHealth(rec Record, now time.Time) HealthResult {
	score := maxScore
	factors := make([]string, 0, 4)
	recommendation := ""
	days := DaysSince(rec.DateApplied, now)

	if rec.Status == types.StatusApplied {
		switch {
		case days > staleAfterDays:
			score -= agingPenalty
			factors = append(factors, "Application aging (14+ days with no response)")
			recommendation = "Consider sending a follow-up email"
		case days > pendingAfterDays:
			score -= pendingPenalty
			factors = append(factors, "Application pending (7-14 days)")
			recommendation = "Monitor for responses, prepare for potential interview"
		default:
			factors = append(factors, "Recently applied (under 7 days)")
			recommendation = "Continue researching company and preparing"
		}
	}

	switch rec.Status {
	case types.StatusRejected:
		score -= rejectedPenalty
		factors = append(factors, "Application rejected")
		recommendation = "Review feedback, identify improvement areas"
	case types.StatusWithdrawn:
		score -= withdrawnPenalty
		factors = append(factors, "Application withdrawn")
		recommendation = "Consider reapplying with stronger profile"
	case types.StatusInterviewScheduled:
		score += interviewBonus
		factors = append(factors, "Interview scheduled - strong progress!")
		recommendation = "Focus on interview preparation immediately"
	case types.StatusOffer:
		score = maxScore
		factors = append(factors, "Offer received - congratulations!")
		recommendation = "Review offer details and make informed decision"
	}

	if utf8.RuneCountInString(strings.TrimSpace(rec.Notes)) < minEngagedNotesLength {
		score -= lowNotesPenalty
		factors = append(factors, "Low engagement (minimal notes)")
	} else {
		factors = append(factors, "Good engagement with detailed notes")
	}

	if strings.TrimSpace(rec.JobURL) == "" {
		score -= missingURLPenalty
		factors = append(factors, "Missing job posting link")
	}

	score = clamp(score, minScore, maxScore)

	return HealthResult{
		Score:            score,
		Category:         categoryFor(score),
		Factors:          factors,
		Recommendation:   recommendation,
		DaysSinceApplied: days,
		Status:           rec.Status,
	}
}
