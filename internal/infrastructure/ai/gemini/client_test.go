package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fridgelens/v1/internal/infrastructure/config"
	"github.com/fridgelens/v1/internal/ports/outbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(
		config.AIConfig{
			BaseURL:         baseURL,
			Model:           "gemini-1.5-flash",
			APIKey:          "test-key-1234",
			RequestTimeout:  2 * time.Second,
			Temperature:     0.9,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
		config.RateLimitConfig{RequestsPerMin: 600, BurstSize: 10},
		zap.NewNop(),
	)
}

func textReply(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestDetectIngredients(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key-1234", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, textReply("eggs, milk, cheddar"))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	image := []byte{0xFF, 0xD8, 0xFF}

	ingredients, err := c.DetectIngredients(context.Background(), image, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs", "milk", "cheddar"}, ingredients)

	assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	require.NotNil(t, gotBody.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", gotBody.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), gotBody.Contents[0].Parts[1].InlineData.Data)
	assert.Equal(t, 0.9, gotBody.GenerationConfig.Temperature)
	assert.Len(t, gotBody.SafetySettings, 4)
}

func TestGenerateRecipes(t *testing.T) {
	reply := `{"recipes": [{"name": "Omelette", "ingredients": ["eggs"], "instructions": ["Cook."], "calories": 300, "carbonFootprint": 1.5, "nutritionalInfo": {"protein": 20}, "expirationInfo": {"daysUntilExpiration": 3, "freshnessScore": 0.7}}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, textReply("```json\n"+reply+"\n```"))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	recipes, err := c.GenerateRecipes(context.Background(), outbound.RecipeRequest{Ingredients: []string{"eggs"}})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Omelette", recipes[0].Name)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1")
	c.apiKey = ""

	_, err := c.CookingTip(context.Background(), "Omelette")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidCredential, apperrors.GetCode(err))
}

func TestGenerate_RejectionTaxonomy(t *testing.T) {
	tests := []struct {
		status   int
		wantCode apperrors.ErrorCode
	}{
		{http.StatusBadRequest, apperrors.CodeInvalidCredential},
		{http.StatusUnauthorized, apperrors.CodeInvalidCredential},
		{http.StatusForbidden, apperrors.CodeInvalidCredential},
		{http.StatusTooManyRequests, apperrors.CodeUpstreamRejected},
		{http.StatusInternalServerError, apperrors.CodeUpstreamRejected},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"error": {"code": `+fmt.Sprint(tt.status)+`, "message": "rejected", "status": "ERROR"}}`)
			}))
			defer srv.Close()

			c := testClient(t, srv.URL)
			_, err := c.CookingTip(context.Background(), "Omelette")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
		})
	}
}

func TestGenerate_Unreachable(t *testing.T) {
	// Port 1 is never listening.
	c := testClient(t, "http://127.0.0.1:1")

	_, err := c.CookingTip(context.Background(), "Omelette")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnreachable, apperrors.GetCode(err))
}

func TestGenerate_RecoversAfterOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, textReply("tip"))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	c.setOnline(false)

	// A stale offline reading must not block the call: one live probe
	// runs first and flips the state back.
	tip, err := c.CookingTip(context.Background(), "Omelette")
	require.NoError(t, err)
	assert.Equal(t, "tip", tip)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.CookingTip(context.Background(), "Omelette")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeMalformedResponse, apperrors.GetCode(err))
}

func TestCheckReachability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	// Any HTTP response means reachable, even a rejection.
	assert.NoError(t, c.CheckReachability(context.Background()))

	srv.Close()
	assert.Error(t, c.CheckReachability(context.Background()))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****1234", maskKey("test-key-1234"))
	assert.Equal(t, "****", maskKey("ab"))
}
