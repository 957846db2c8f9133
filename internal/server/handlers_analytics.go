package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/analytics"
	"github.com/jonathan/jobtracker/internal/cache"
	"github.com/jonathan/jobtracker/internal/db"
	"github.com/jonathan/jobtracker/internal/metrics"
	"go.uber.org/zap"
)

// PredictionResponse is the body of GET /api/analytics/predict/{id}.
type PredictionResponse struct {
	JobID            string `json:"jobId"`
	Company          string `json:"company"`
	Position         string `json:"position"`
	OfferProbability int    `json:"offerProbability"`
}

// cached serves kind from the analytics cache, computing and storing it on a miss.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *Server, userID uuid.UUID, kind cache.Kind, compute func() (T, error)) (T, error) {
	var value T
	hit, err := s.cache.Get(ctx, userID, kind, &value)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues(string(kind), "error").Inc()
		s.logger.Warn("analytics cache read failed", zap.String("kind", string(kind)), zap.Error(err))
	case hit:
		metrics.CacheLookups.WithLabelValues(string(kind), "hit").Inc()
		return value, nil
	default:
		metrics.CacheLookups.WithLabelValues(string(kind), "miss").Inc()
	}

	value, err = compute()
	if err != nil {
		return value, err
	}
	metrics.AnalyticsComputations.WithLabelValues(string(kind)).Inc()

	if err := s.cache.Set(ctx, userID, kind, value); err != nil {
		s.logger.Warn("analytics cache write failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	return value, nil
}

func (s *Server) userRecords(ctx context.Context, userID uuid.UUID) ([]analytics.Record, []db.Application, error) {
	apps, err := s.store.ListApplications(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return db.Records(apps), apps, nil
}

func (s *Server) handleHealthScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	now := s.now()

	app, err := s.loadApplication(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	result := analytics.CalculateHealth(app.Record(), now)
	metrics.AnalyticsComputations.WithLabelValues("health").Inc()
	metrics.HealthScores.Observe(float64(result.Score))

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleVelocity(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	now := s.now()

	result, err := cached(r.Context(), s, userID, cache.KindVelocity, func() (analytics.VelocityResult, error) {
		recs, _, err := s.userRecords(r.Context(), userID)
		if err != nil {
			return analytics.VelocityResult{}, err
		}
		return analytics.CalculateVelocity(recs, now), nil
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	now := s.now()

	result, err := cached(r.Context(), s, userID, cache.KindInsights, func() (analytics.InsightsResult, error) {
		recs, _, err := s.userRecords(r.Context(), userID)
		if err != nil {
			return analytics.InsightsResult{}, err
		}
		return analytics.GenerateInsights(recs, now), nil
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}

	result, err := cached(r.Context(), s, userID, cache.KindSummary, func() (analytics.StatusSummary, error) {
		recs, _, err := s.userRecords(r.Context(), userID)
		if err != nil {
			return analytics.StatusSummary{}, err
		}
		return analytics.Summarize(recs), nil
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	now := s.now()

	recs, apps, err := s.userRecords(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	target := -1
	for i := range apps {
		if apps[i].ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		s.serviceError(w, r, &ErrApplicationNotFound{ID: id})
		return
	}

	probability := analytics.PredictOfferProbability(recs, recs[target], now)
	metrics.AnalyticsComputations.WithLabelValues("predict").Inc()

	s.jsonResponse(w, http.StatusOK, PredictionResponse{
		JobID:            id.String(),
		Company:          apps[target].Company,
		Position:         apps[target].Position,
		OfferProbability: probability,
	})
}
