package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fridgelens/v1/internal/application/favorites"
	appprofile "github.com/fridgelens/v1/internal/application/profile"
	appworkout "github.com/fridgelens/v1/internal/application/workout"
	"github.com/fridgelens/v1/internal/domain/workout"
	"github.com/fridgelens/v1/internal/infrastructure/persistence/kvstore"
	"github.com/fridgelens/v1/internal/ports/inbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/fridgelens/v1/test/testutils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubPipeline scripts the pipeline service per test.
type stubPipeline struct {
	analysis   inbound.Analysis
	analyzeErr error
	tip        string
	rec        workout.Recommendation
	recErr     error
	accepted   workout.Option
	acceptErr  error
}

func (s *stubPipeline) AnalyzeImage(ctx context.Context, image []byte, mimeType string, sustainable bool) (inbound.Analysis, error) {
	return s.analysis, s.analyzeErr
}

func (s *stubPipeline) CurrentAnalysis() inbound.Analysis { return s.analysis }

func (s *stubPipeline) CookingTip(ctx context.Context, recipeName string) (string, error) {
	return s.tip, nil
}

func (s *stubPipeline) RecommendWorkout(ctx context.Context, recipeID uuid.UUID) (workout.Recommendation, error) {
	return s.rec, s.recErr
}

func (s *stubPipeline) AcceptWorkout(ctx context.Context, optionID uuid.UUID) (workout.Option, error) {
	return s.accepted, s.acceptErr
}

func newTestRouter(p inbound.PipelineService) *chi.Mux {
	kv := kvstore.NewMemory()
	logger := zap.NewNop()

	h := NewAPIHandlers(
		p,
		favorites.NewService(kvstore.NewFavoritesStore(kv, logger), logger),
		appprofile.NewService(kvstore.NewProfileStore(kv, logger), logger),
		appworkout.NewService(kvstore.NewWorkoutStore(kv, logger), logger),
		logger,
	)

	r := chi.NewRouter()
	r.Post("/analyze", h.Analyze)
	r.Get("/analysis", h.CurrentAnalysis)
	r.Post("/recipes/tip", h.CookingTip)
	r.Post("/recipes/{id}/workout", h.RecommendWorkout)
	r.Post("/workouts/accept", h.AcceptWorkout)
	r.Get("/workouts", h.ListWorkouts)
	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.SaveProfile)
	r.Get("/favorites", h.ListFavorites)
	r.Post("/favorites", h.AddFavorite)
	r.Delete("/favorites/{id}", h.RemoveFavorite)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAnalyze(t *testing.T) {
	p := &stubPipeline{analysis: inbound.Analysis{Ingredients: []string{"eggs", "milk"}}}
	router := newTestRouter(p)

	w := doJSON(t, router, http.MethodPost, "/analyze", map[string]any{
		"image":     base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8}),
		"mime_type": "image/jpeg",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestAnalyze_InvalidBase64(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := doJSON(t, router, http.MethodPost, "/analyze", map[string]any{
		"image":     "not-base64!!!",
		"mime_type": "image/jpeg",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_MissingImage(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := doJSON(t, router, http.MethodPost, "/analyze", map[string]any{"mime_type": "image/jpeg"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_StageFailureCarriesPartialResults(t *testing.T) {
	p := &stubPipeline{
		analysis: inbound.Analysis{
			Ingredients: []string{"eggs"},
			Err:         "The AI service returned an unexpected response. Please try again.",
		},
		analyzeErr: apperrors.NewMalformedResponseError("bad payload"),
	}
	router := newTestRouter(p)

	w := doJSON(t, router, http.MethodPost, "/analyze", map[string]any{
		"image":     base64.StdEncoding.EncodeToString([]byte{1}),
		"mime_type": "image/jpeg",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unexpected response")
	// The partial ingredient list rides along.
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	assert.Contains(t, string(data), "eggs")
}

func TestCurrentAnalysis(t *testing.T) {
	p := &stubPipeline{analysis: inbound.Analysis{Ingredients: []string{"tofu"}}}
	router := newTestRouter(p)

	w := doJSON(t, router, http.MethodGet, "/analysis", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tofu")
}

func TestCookingTip(t *testing.T) {
	router := newTestRouter(&stubPipeline{tip: "Salt the water."})

	w := doJSON(t, router, http.MethodPost, "/recipes/tip", map[string]string{"recipe_name": "Pasta"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Salt the water.")
}

func TestRecommendWorkout_BadID(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := doJSON(t, router, http.MethodPost, "/recipes/not-a-uuid/workout", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendWorkout_UnknownRecipe(t *testing.T) {
	router := newTestRouter(&stubPipeline{recErr: apperrors.NewNotFoundError("Recipe")})

	w := doJSON(t, router, http.MethodPost, "/recipes/"+uuid.NewString()+"/workout", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptWorkout(t *testing.T) {
	accepted := testutils.NewWorkoutOptionBuilder().CompletedAt(time.Now()).Build()
	router := newTestRouter(&stubPipeline{accepted: accepted})

	w := doJSON(t, router, http.MethodPost, "/workouts/accept", map[string]string{
		"option_id": accepted.ID.String(),
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), accepted.ID.String())
}

func TestAcceptWorkout_BadOptionID(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := doJSON(t, router, http.MethodPost, "/workouts/accept", map[string]string{"option_id": "nope"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := doJSON(t, router, http.MethodPut, "/profile", map[string]any{
		"height": 180.0,
		"weight": 75.0,
		"age":    30,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bmi_category")
	assert.Contains(t, w.Body.String(), "Normal weight")
}

func TestSaveProfile_Invalid(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := doJSON(t, router, http.MethodPut, "/profile", map[string]any{
		"height": 0.0,
		"weight": 75.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesFlow(t *testing.T) {
	router := newTestRouter(&stubPipeline{})
	r := testutils.NewRecipeBuilder().WithName("Omelette").Build()

	w := doJSON(t, router, http.MethodPost, "/favorites", r)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Omelette")

	w = doJSON(t, router, http.MethodDelete, "/favorites/"+r.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/favorites/"+r.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListWorkouts_Empty(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := doJSON(t, router, http.MethodGet, "/workouts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}
