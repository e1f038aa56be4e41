package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fridgelens/v1/internal/infrastructure/config"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"go.uber.org/zap"
)

// UserInfo is the identity document returned by the provider after a
// successful authorization-code exchange.
type UserInfo struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// OAuthClient exchanges authorization codes with a third-party identity
// provider. The redirect dance itself happens on the client; this side
// only sees the resulting code.
type OAuthClient struct {
	cfg    config.AuthConfig
	client *http.Client
	logger *zap.Logger
}

// NewOAuthClient creates an OAuth client from auth configuration.
func NewOAuthClient(cfg config.AuthConfig, logger *zap.Logger) *OAuthClient {
	return &OAuthClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.Named("oauth"),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ExchangeCode trades an authorization code for an access token and
// fetches the user's identity document.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code string) (UserInfo, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {c.cfg.OAuthClientID},
		"client_secret": {c.cfg.OAuthClientSecret},
		"redirect_uri":  {c.cfg.OAuthRedirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OAuthTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return UserInfo{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return UserInfo{}, apperrors.NewUnreachableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return UserInfo{}, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("code exchange rejected", zap.Int("status", resp.StatusCode))
		return UserInfo{}, apperrors.NewUnauthorizedError("Authorization code was rejected by the identity provider")
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return UserInfo{}, apperrors.NewUnauthorizedError("Identity provider returned an unusable token response")
	}

	return c.fetchUserInfo(ctx, token.AccessToken)
}

func (c *OAuthClient) fetchUserInfo(ctx context.Context, accessToken string) (UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.OAuthUserInfoURL, nil)
	if err != nil {
		return UserInfo{}, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return UserInfo{}, apperrors.NewUnreachableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, apperrors.NewUnauthorizedError("Identity provider rejected the access token")
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return UserInfo{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Sub == "" {
		return UserInfo{}, apperrors.NewUnauthorizedError("Identity document is missing a subject")
	}

	c.logger.Info("user authenticated", zap.String("sub", info.Sub))
	return info, nil
}
