package providers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

type ctxKey int

const claimsKey ctxKey = iota

type AuthProviderInterface interface {
	IssueToken(user *models.User) (string, time.Time, error)
	VerifyToken(token string) (*models.AuthClaims, error)
	Middleware(next http.Handler) http.Handler
}

type AuthProvider struct {
	conf   *structures.Config
	cache  CacheProviderInterface
	logger Logger
}

func NewAuthProvider(conf *structures.Config, cache CacheProviderInterface, logger Logger) AuthProviderInterface {
	return &AuthProvider{
		conf:   conf,
		cache:  cache,
		logger: logger,
	}
}

func (ap *AuthProvider) IssueToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ap.conf.Auth.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(ap.conf.Auth.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (ap *AuthProvider) VerifyToken(tokenStr string) (*models.AuthClaims, error) {
	cacheKey := "tok:" + tokenStr
	if data, ok := ap.cache.Get(cacheKey); ok {
		var claims models.AuthClaims
		if err := json.Unmarshal(data, &claims); err == nil {
			return &claims, nil
		}
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(ap.conf.Auth.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	claims := &models.AuthClaims{}
	claims.UserID, _ = mapClaims["sub"].(string)
	claims.Username, _ = mapClaims["username"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	if claims.UserID == "" {
		return nil, errInvalidToken
	}

	if data, err := json.Marshal(claims); err == nil {
		ap.cache.Set(cacheKey, data)
	}

	return claims, nil
}

func (ap *AuthProvider) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		claims, err := ap.VerifyToken(tokenStr)
		if err != nil {
			ap.logger.Debugf(GetLogTypeByRequestType(r.Method), "Rejected token for %s: %s", r.URL.Path, err)
			unauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// ClaimsFromContext returns the verified identity set by Middleware, or nil
// on unauthenticated paths.
func ClaimsFromContext(ctx context.Context) *models.AuthClaims {
	claims, _ := ctx.Value(claimsKey).(*models.AuthClaims)
	return claims
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
