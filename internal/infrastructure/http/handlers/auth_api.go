package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fridgelens/v1/internal/infrastructure/auth"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles the login exchange. The OAuth redirect dance
// happens on the client; this endpoint only sees the resulting code.
type AuthAPIHandlers struct {
	oauth  *auth.OAuthClient
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewAuthAPIHandlers creates auth handlers.
func NewAuthAPIHandlers(oauth *auth.OAuthClient, tokens *auth.TokenService, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{oauth: oauth, tokens: tokens, logger: logger}
}

type loginRequest struct {
	Code string `json:"code"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  auth.UserInfo `json:"user"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		h.fail(w, apperrors.NewBadRequestError("code is required"))
		return
	}

	info, err := h.oauth.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		h.fail(w, err)
		return
	}

	token, err := h.tokens.Issue(info)
	if err != nil {
		h.fail(w, apperrors.Wrap(err, "failed to issue session token"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: loginResponse{Token: token, User: info}})
}

func (h *AuthAPIHandlers) fail(w http.ResponseWriter, err error) {
	appErr := apperrors.Wrap(err, "login failed")
	h.logger.Warn("login failed", zap.Error(appErr))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: appErr.Message})
}
