// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/fridgelens/v1/internal/domain/profile"
	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/ports/inbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	pipeline  inbound.PipelineService
	favorites inbound.FavoritesService
	profiles  inbound.ProfileService
	workouts  inbound.WorkoutService
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	pipeline inbound.PipelineService,
	favorites inbound.FavoritesService,
	profiles inbound.ProfileService,
	workouts inbound.WorkoutService,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		pipeline:  pipeline,
		favorites: favorites,
		profiles:  profiles,
		workouts:  workouts,
		validate:  validator.New(),
		logger:    logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type analyzeRequest struct {
	Image       string `json:"image" validate:"required"` // base64
	MimeType    string `json:"mime_type" validate:"required"`
	Sustainable bool   `json:"sustainable"`
}

// Analyze handles POST /api/v1/analyze
func (h *APIHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("image must be valid base64"))
		return
	}

	analysis, err := h.pipeline.AnalyzeImage(r.Context(), image, req.MimeType, req.Sustainable)
	if err != nil {
		// Partial results ride along with the error message.
		h.writeJSON(w, statusOf(err), APIResponse{Success: false, Data: analysis, Error: analysis.Err})
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: analysis})
}

// CurrentAnalysis handles GET /api/v1/analysis
func (h *APIHandlers) CurrentAnalysis(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: h.pipeline.CurrentAnalysis()})
}

type tipRequest struct {
	RecipeName string `json:"recipe_name" validate:"required"`
}

// CookingTip handles POST /api/v1/recipes/tip
func (h *APIHandlers) CookingTip(w http.ResponseWriter, r *http.Request) {
	var req tipRequest
	if !h.decode(w, r, &req) {
		return
	}

	tip, err := h.pipeline.CookingTip(r.Context(), req.RecipeName)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]string{"tip": tip}})
}

// RecommendWorkout handles POST /api/v1/recipes/{id}/workout
func (h *APIHandlers) RecommendWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.pipeline.RecommendWorkout(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rec})
}

type acceptRequest struct {
	OptionID string `json:"option_id" validate:"required,uuid"`
}

// AcceptWorkout handles POST /api/v1/workouts/accept
func (h *APIHandlers) AcceptWorkout(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if !h.decode(w, r, &req) {
		return
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("option_id must be a UUID"))
		return
	}

	option, err := h.pipeline.AcceptWorkout(r.Context(), optionID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: option, Message: "Workout recorded"})
}

// ListWorkouts handles GET /api/v1/workouts
func (h *APIHandlers) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	options, err := h.workouts.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: options})
}

// DeleteWorkout handles DELETE /api/v1/workouts/{id}
func (h *APIHandlers) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.workouts.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Workout deleted"})
}

// WeeklyCompletion handles GET /api/v1/workouts/weekly
func (h *APIHandlers) WeeklyCompletion(w http.ResponseWriter, r *http.Request) {
	days, err := h.workouts.WeeklyCompletion(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: days})
}

// WorkoutStats handles GET /api/v1/workouts/stats
func (h *APIHandlers) WorkoutStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.workouts.Stats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: stats})
}

// GetProfile handles GET /api/v1/profile
func (h *APIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]interface{}{
		"profile":      p,
		"bmi":          p.BMI(),
		"bmi_category": p.BMICategory(),
	}})
}

// SaveProfile handles PUT /api/v1/profile
func (h *APIHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.UserHealthProfile
	if !h.decode(w, r, &p) {
		return
	}
	if err := h.profiles.Save(r.Context(), p); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Profile saved"})
}

// ListFavorites handles GET /api/v1/favorites
func (h *APIHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.favorites.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

// AddFavorite handles POST /api/v1/favorites
func (h *APIHandlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var rec recipe.Recipe
	if !h.decode(w, r, &rec) {
		return
	}
	if err := h.favorites.Add(r.Context(), rec); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Message: "Recipe favorited"})
}

// RemoveFavorite handles DELETE /api/v1/favorites/{id}
func (h *APIHandlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.favorites.Remove(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Recipe un-favorited"})
}

// decode reads and validates a JSON request body, writing the error
// response itself when the payload is unusable.
func (h *APIHandlers) decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		h.writeError(w, apperrors.NewBadRequestError("request body must be valid JSON"))
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		h.writeError(w, apperrors.NewValidationError(err.Error()))
		return false
	}
	return true
}

func (h *APIHandlers) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *APIHandlers) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.Wrap(err, "request failed")
	h.writeJSON(w, appErr.StatusCode(), APIResponse{Success: false, Error: appErr.Message})
}

func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func statusOf(err error) int {
	return apperrors.Wrap(err, "request failed").StatusCode()
}
