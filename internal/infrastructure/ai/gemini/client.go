// Package gemini implements the AIService interface against a
// Gemini-style generative-content HTTP endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
	"github.com/fridgelens/v1/internal/infrastructure/ai/parse"
	"github.com/fridgelens/v1/internal/infrastructure/ai/prompt"
	"github.com/fridgelens/v1/internal/infrastructure/config"
	"github.com/fridgelens/v1/internal/ports/outbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client dispatches prompts to the generative AI endpoint. Each call is
// a single attempt: failures surface to the caller instead of being
// retried here.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger

	genConfig      generationConfig
	safetySettings []safetySetting

	// Advisory connectivity state. A stale offline reading never
	// permanently blocks dispatch: at minimum one live probe runs
	// before a call fails with UNREACHABLE.
	mu     sync.Mutex
	online bool
}

// NewClient creates a new Gemini client from configuration.
func NewClient(cfg config.AIConfig, rl config.RateLimitConfig, logger *zap.Logger) *Client {
	limit := rate.Every(time.Minute / time.Duration(max(rl.RequestsPerMin, 1)))

	logger.Info("Gemini client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.String("api_key", maskKey(cfg.APIKey)),
		zap.Duration("timeout", cfg.RequestTimeout))

	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(limit, max(rl.BurstSize, 1)),
		logger:  logger.Named("gemini-client"),
		online:  true,
		genConfig: generationConfig{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		safetySettings: defaultSafetySettings(),
	}
}

// Gemini wire structures

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

func defaultSafetySettings() []safetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]safetySetting, len(categories))
	for i, c := range categories {
		settings[i] = safetySetting{Category: c, Threshold: "BLOCK_MEDIUM_AND_ABOVE"}
	}
	return settings
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// generate dispatches a prompt, optionally with an inlined image, and
// returns the first candidate's text content.
func (c *Client) generate(ctx context.Context, promptText string, image []byte, mimeType string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewInvalidCredentialError("no API key configured")
	}

	if err := c.ensureReachable(ctx); err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", apperrors.Wrap(err, "rate limiter interrupted")
	}

	parts := []part{{Text: promptText}}
	if len(image) > 0 {
		// The transport only carries text, so the image payload is
		// re-encoded before embedding.
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}})
	}

	reqBody := generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: c.genConfig,
		SafetySettings:   c.safetySettings,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to marshal request")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.setOnline(false)
		return "", apperrors.NewUnreachableError(err)
	}
	defer resp.Body.Close()
	c.setOnline(true)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewMalformedResponseError("failed to read response body").WithCause(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.rejectionError(resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", apperrors.NewMalformedResponseError("response body is not valid JSON").WithCause(err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewMalformedResponseError("response contains no candidate text")
	}

	c.logger.Debug("generation successful",
		zap.Int("prompt_len", len(promptText)),
		zap.Bool("has_image", len(image) > 0),
		zap.Duration("duration", time.Since(start)))

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// rejectionError maps a non-2xx status to the failure taxonomy.
func (c *Client) rejectionError(status int, body []byte) error {
	message := "upstream rejection without a decodable error body"
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	c.logger.Warn("AI endpoint rejected request",
		zap.Int("status", status),
		zap.String("message", message))

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		// Key problems come back as 400 (malformed key), 401, or 403.
		return apperrors.NewInvalidCredentialError(message)
	default:
		return apperrors.NewUpstreamRejectedError(status, message)
	}
}

// ensureReachable short-circuits obviously doomed calls when the last
// observed state was offline, but only after one live probe.
func (c *Client) ensureReachable(ctx context.Context) error {
	c.mu.Lock()
	online := c.online
	c.mu.Unlock()
	if online {
		return nil
	}

	if err := c.CheckReachability(ctx); err != nil {
		return err
	}
	return nil
}

// CheckReachability performs a live probe of the endpoint host.
func (c *Client) CheckReachability(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1beta/models?key="+c.apiKey, nil)
	if err != nil {
		return apperrors.Wrap(err, "failed to create probe request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.setOnline(false)
		return apperrors.NewUnreachableError(err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// Any HTTP response at all means the endpoint is reachable;
	// status handling belongs to the real call.
	c.setOnline(true)
	return nil
}

func (c *Client) setOnline(v bool) {
	c.mu.Lock()
	c.online = v
	c.mu.Unlock()
}

// DetectIngredients analyzes a fridge photo and returns detected
// ingredient names.
func (c *Client) DetectIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	raw, err := c.generate(ctx, prompt.IngredientDetection(), image, mimeType)
	if err != nil {
		return nil, err
	}
	return parse.Ingredients(raw), nil
}

// GenerateRecipes produces recipes for the given ingredients.
func (c *Client) GenerateRecipes(ctx context.Context, req outbound.RecipeRequest) ([]recipe.Recipe, error) {
	raw, err := c.generate(ctx, prompt.RecipeGeneration(req), nil, "")
	if err != nil {
		return nil, err
	}
	return parse.Recipes(raw)
}

// CookingTip returns free-form advice text for a named recipe.
func (c *Client) CookingTip(ctx context.Context, recipeName string) (string, error) {
	return c.generate(ctx, prompt.CookingTip(recipeName), nil, "")
}

// RecommendWorkout returns three workout options for a recipe's calories.
func (c *Client) RecommendWorkout(ctx context.Context, recipeName string, calories int) (workout.Recommendation, error) {
	raw, err := c.generate(ctx, prompt.WorkoutRecommendation(recipeName, calories), nil, "")
	if err != nil {
		return workout.Recommendation{}, err
	}
	return parse.Workout(raw)
}

// maskKey keeps only the last four characters of the credential for logs.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
