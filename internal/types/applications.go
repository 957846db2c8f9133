package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ApplicationStatus is the lifecycle stage of a job application.
type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "Applied"
	StatusInterviewScheduled ApplicationStatus = "Interview Scheduled"
	StatusOffer              ApplicationStatus = "Offer"
	StatusRejected           ApplicationStatus = "Rejected"
	StatusWithdrawn          ApplicationStatus = "Withdrawn"
)

// AllStatuses lists every status in pipeline order.
var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInterviewScheduled,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseApplicationStatus matches s against the known statuses, ignoring case and surrounding space.
// An empty string yields StatusApplied.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusApplied, nil
	}
	for _, known := range AllStatuses {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown application status: %q", s)
}

// CreateApplicationRequest is the body of POST /api/jobs.
type CreateApplicationRequest struct {
	Company        string `json:"company" validate:"required,max=200"`
	Position       string `json:"position" validate:"required,max=200"`
	Location       string `json:"location,omitempty" validate:"max=200"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=Applied 'Interview Scheduled' Offer Rejected Withdrawn"`
	DateApplied    string `json:"dateApplied,omitempty"`
	Notes          string `json:"notes,omitempty"`
	JobURL         string `json:"jobUrl,omitempty" validate:"omitempty,url"`
	Salary         string `json:"salary,omitempty" validate:"max=100"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// UpdateApplicationRequest is the body of PUT /api/jobs/{id}. Nil fields keep their stored value.
type UpdateApplicationRequest struct {
	Company        *string `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	Position       *string `json:"position,omitempty" validate:"omitempty,min=1,max=200"`
	Location       *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Status         *string `json:"status,omitempty" validate:"omitempty,oneof=Applied 'Interview Scheduled' Offer Rejected Withdrawn"`
	DateApplied    *string `json:"dateApplied,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	JobURL         *string `json:"jobUrl,omitempty" validate:"omitempty,url|len=0"`
	Salary         *string `json:"salary,omitempty" validate:"omitempty,max=100"`
	JobDescription *string `json:"jobDescription,omitempty"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if _, err := ParseDate(r.DateApplied); err != nil {
		return err
	}
	return nil
}

// Validate validates the UpdateApplicationRequest using the validator.
func (r *UpdateApplicationRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.DateApplied != nil {
		if _, err := ParseDate(*r.DateApplied); err != nil {
			return err
		}
	}
	return nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp.
// An empty string returns the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

// Application is the API representation of a tracked job application.
type Application struct {
	ID             string            `json:"id"`
	Company        string            `json:"company"`
	Position       string            `json:"position"`
	Location       string            `json:"location"`
	Status         ApplicationStatus `json:"status"`
	DateApplied    time.Time         `json:"dateApplied"`
	Notes          string            `json:"notes"`
	JobURL         string            `json:"jobUrl"`
	Salary         string            `json:"salary"`
	JobDescription string            `json:"jobDescription"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ImportedApplication is one entry of a bulk import file.
type ImportedApplication struct {
	Company        string `json:"company"`
	Position       string `json:"position"`
	Location       string `json:"location,omitempty"`
	Status         string `json:"status,omitempty"`
	DateApplied    string `json:"dateApplied,omitempty"`
	Notes          string `json:"notes,omitempty"`
	JobURL         string `json:"jobUrl,omitempty"`
	Salary         string `json:"salary,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// CreateRequest converts the entry into the same request the API accepts.
func (a ImportedApplication) CreateRequest() CreateApplicationRequest {
	return CreateApplicationRequest{
		Company:        a.Company,
		Position:       a.Position,
		Location:       a.Location,
		Status:         a.Status,
		DateApplied:    a.DateApplied,
		Notes:          a.Notes,
		JobURL:         a.JobURL,
		Salary:         a.Salary,
		JobDescription: a.JobDescription,
	}
}

// ApplicationImport is the top-level document accepted by the import command.
type ApplicationImport struct {
	Applications []ImportedApplication `json:"applications"`
}
