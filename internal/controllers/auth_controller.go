package controllers

import (
	"errors"
	"net/http"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/services"
	json "github.com/goccy/go-json"
)

type AuthController struct {
	logger providers.Logger
	users  services.UserServiceInterface
	auth   providers.AuthProviderInterface
}

func NewAuthController(logger providers.Logger, users services.UserServiceInterface, auth providers.AuthProviderInterface) *AuthController {
	return &AuthController{
		logger: logger,
		users:  users,
		auth:   auth,
	}
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := ac.users.Authenticate(r.Context(), creds.Username, creds.Password)
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case err != nil:
		ac.logger.Errorf(providers.TypePost, "Login for %q failed: %s", creds.Username, err)
		writeError(w, http.StatusServiceUnavailable, "user store unavailable")
		return
	}

	token, expiresAt, err := ac.auth.IssueToken(user)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Issuing token for %q failed: %s", creds.Username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt,
		"user":         user,
	})
}
