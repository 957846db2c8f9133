package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/jobtracker/internal/server/middleware"
	"github.com/jonathan/jobtracker/internal/types"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
		logger:      zap.NewNop(),
	}
}

// WithLogger sets the logger used for unexpected failures.
func (h *AuthHandler) WithLogger(logger *zap.Logger) *AuthHandler {
	h.logger = logger
	return h
}

func (h *AuthHandler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message}, h.logger)
}

func (h *AuthHandler) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.Error(err))
		h.writeError(w, status, "Something went wrong")
		return
	}
	h.writeError(w, status, err.Error())
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.serviceError(w, fmt.Errorf("failed to generate token: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, types.LoginResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	}, h.logger)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.serviceError(w, fmt.Errorf("failed to generate token: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	}, h.logger)
}

// UpdatePassword changes the authenticated user's password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, middleware.MsgNoToken)
		return
	}

	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"}, h.logger)
}

// extractValidationErrors describes the first failed field.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		switch ve.Tag() {
		case "required":
			return fmt.Sprintf("validation error: %s is required", ve.Field())
		case "min":
			return fmt.Sprintf("validation error: %s must be at least %s characters", ve.Field(), ve.Param())
		case "max":
			return fmt.Sprintf("validation error: %s must be at most %s characters", ve.Field(), ve.Param())
		case "email":
			return fmt.Sprintf("validation error: %s must be a valid email address", ve.Field())
		case "url":
			return fmt.Sprintf("validation error: %s must be a valid URL", ve.Field())
		case "oneof":
			return fmt.Sprintf("validation error: %s must be one of: %s", ve.Field(), ve.Param())
		default:
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: " + err.Error()
}
