package db

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/analytics"
	"github.com/jonathan/jobtracker/internal/types"
)

// DefaultLocation is stored when an application is created without one.
const DefaultLocation = "Remote"

// Application is a tracked job application row.
type Application struct {
	ID             uuid.UUID               `json:"id"`
	UserID         uuid.UUID               `json:"userId"`
	Company        string                  `json:"company"`
	Position       string                  `json:"position"`
	Location       string                  `json:"location"`
	Status         types.ApplicationStatus `json:"status"`
	DateApplied    time.Time               `json:"dateApplied"`
	Notes          string                  `json:"notes"`
	JobURL         string                  `json:"jobUrl" db:"job_url"`
	Salary         string                  `json:"salary"`
	JobDescription string                  `json:"jobDescription" db:"job_description"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// applyDefaults fills the values a new row falls back to.
func (a *Application) applyDefaults(now time.Time) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Location == "" {
		a.Location = DefaultLocation
	}
	if a.Status == "" {
		a.Status = types.StatusApplied
	}
	if a.DateApplied.IsZero() {
		a.DateApplied = now
	}
}

// Record converts the row into analytics engine input.
func (a *Application) Record() analytics.Record {
	return analytics.Record{
		Company:     a.Company,
		Position:    a.Position,
		Status:      a.Status,
		DateApplied: a.DateApplied,
		Notes:       a.Notes,
		JobURL:      a.JobURL,
	}
}

// Records converts rows into analytics input, keeping order.
func Records(apps []Application) []analytics.Record {
	recs := make([]analytics.Record, len(apps))
	for i := range apps {
		recs[i] = apps[i].Record()
	}
	return recs
}

// API converts the row into its response representation.
func (a *Application) API() types.Application {
	return types.Application{
		ID:             a.ID.String(),
		Company:        a.Company,
		Position:       a.Position,
		Location:       a.Location,
		Status:         a.Status,
		DateApplied:    a.DateApplied,
		Notes:          a.Notes,
		JobURL:         a.JobURL,
		Salary:         a.Salary,
		JobDescription: a.JobDescription,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ErrMissingCompanyOrPosition rejects rows without the two required fields.
var ErrMissingCompanyOrPosition = errors.New("Company and position are required") //nolint:staticcheck // returned to API clients verbatim

// NewApplication builds an unsaved row for userID from a validated create request.
// A missing dateApplied falls back to now.
func NewApplication(userID uuid.UUID, req types.CreateApplicationRequest, now time.Time) (*Application, error) {
	app := &Application{
		UserID:         userID,
		Company:        strings.TrimSpace(req.Company),
		Position:       strings.TrimSpace(req.Position),
		Location:       req.Location,
		Notes:          req.Notes,
		JobURL:         req.JobURL,
		Salary:         req.Salary,
		JobDescription: req.JobDescription,
	}
	if app.Company == "" || app.Position == "" {
		return nil, ErrMissingCompanyOrPosition
	}
	if req.Status != "" {
		status, err := types.ParseApplicationStatus(req.Status)
		if err != nil {
			return nil, err
		}
		app.Status = status
	}
	applied, err := types.ParseDate(req.DateApplied)
	if err != nil {
		return nil, err
	}
	app.DateApplied = applied
	app.applyDefaults(now)
	return app, nil
}

// Apply copies the fields present in req onto the row.
func (a *Application) Apply(req types.UpdateApplicationRequest) error {
	if req.Company != nil {
		a.Company = strings.TrimSpace(*req.Company)
	}
	if req.Position != nil {
		a.Position = strings.TrimSpace(*req.Position)
	}
	if req.Location != nil {
		a.Location = *req.Location
	}
	if req.Status != nil {
		status, err := types.ParseApplicationStatus(*req.Status)
		if err != nil {
			return err
		}
		a.Status = status
	}
	if req.DateApplied != nil {
		applied, err := types.ParseDate(*req.DateApplied)
		if err != nil {
			return err
		}
		if !applied.IsZero() {
			a.DateApplied = applied
		}
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	if req.JobURL != nil {
		a.JobURL = *req.JobURL
	}
	if req.Salary != nil {
		a.Salary = *req.Salary
	}
	if req.JobDescription != nil {
		a.JobDescription = *req.JobDescription
	}
	if a.Company == "" || a.Position == "" {
		return ErrMissingCompanyOrPosition
	}
	return nil
}
