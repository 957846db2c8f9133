package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/db"
	"github.com/jonathan/jobtracker/internal/server/middleware"
	"github.com/jonathan/jobtracker/internal/types"
	"go.uber.org/zap"
)

// requestUser returns the authenticated user, writing a 401 when absent.
func (s *Server) requestUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, middleware.MsgNoToken)
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrInvalidID{Raw: raw}
	}
	return id, nil
}

// loadApplication fetches one of userID's applications; absent and foreign rows look the same.
func (s *Server) loadApplication(ctx context.Context, userID, id uuid.UUID) (*db.Application, error) {
	app, err := s.store.GetApplication(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &ErrApplicationNotFound{ID: id}
	}
	return app, nil
}

// invalidate drops the user's cached analytics after a write.
func (s *Server) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate analytics cache",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func apiApplications(apps []db.Application) []types.Application {
	out := make([]types.Application, len(apps))
	for i := range apps {
		out[i] = apps[i].API()
	}
	return out
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}

	apps, err := s.store.ListApplications(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, apiApplications(apps))
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	app, err := s.loadApplication(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, app.API())
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := db.NewApplication(userID, req, s.now())
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateApplication(r.Context(), app)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.invalidate(r.Context(), userID)

	s.jsonResponse(w, http.StatusCreated, created.API())
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	var req types.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.loadApplication(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := app.Apply(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.UpdateApplication(r.Context(), app)
	if errors.Is(err, db.ErrNotFound) {
		err = &ErrApplicationNotFound{ID: id}
	}
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.invalidate(r.Context(), userID)

	s.jsonResponse(w, http.StatusOK, updated.API())
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	err = s.store.DeleteApplication(r.Context(), userID, id)
	if errors.Is(err, db.ErrNotFound) {
		err = &ErrApplicationNotFound{ID: id}
	}
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.invalidate(r.Context(), userID)

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}
