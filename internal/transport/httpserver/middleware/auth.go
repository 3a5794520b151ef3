package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"orbit-expenses/internal/config"
	"orbit-expenses/pkg/logger"
)

var (
	ErrTokenRejected     = errors.New("token rejected")
	ErrAuthUnavailable   = errors.New("auth provider unavailable")
	errAuthNotConfigured = errors.New("auth not configured")
)

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (User, error)
}

// Auth authenticates API requests and attaches the user and a request-scoped
// logger to the context.
type Auth struct {
	verifier TokenVerifier
	cache    *tokenCache
	log      logger.Logger
	skipAuth bool
	mockUser User
}

func NewAuth(cfg config.SupabaseConfig, log logger.Logger) *Auth {
	if log == nil {
		log = logger.Nop()
	}
	return newAuth(cfg, newSupabaseVerifier(cfg), log, time.Now)
}

func newAuth(cfg config.SupabaseConfig, verifier TokenVerifier, log logger.Logger, now func() time.Time) *Auth {
	return &Auth{
		verifier: verifier,
		cache:    newTokenCache(cfg.TokenCacheTTL, now),
		log:      log,
		skipAuth: cfg.SkipAuth,
		mockUser: devUser(cfg.MockUserID, cfg.MockUserEmail, cfg.MockUserName, cfg.MockUserAvatar),
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := a.log.With("request_id", chimw.GetReqID(r.Context()))

		user, err := a.authenticate(r)
		switch {
		case errors.Is(err, errAuthNotConfigured):
			log.Error("auth: not configured", "skip_auth", a.skipAuth)
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		case errors.Is(err, ErrAuthUnavailable):
			log.Warn("auth: provider unavailable", "err", err)
			writeError(w, http.StatusServiceUnavailable, "auth_unavailable", "auth provider unavailable")
			return
		case err != nil:
			log.BusinessError("auth: token rejected", err)
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}

		log = log.With("user_id", user.ID)
		ctx := logger.IntoContext(WithUser(r.Context(), user), log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) authenticate(r *http.Request) (User, error) {
	if a.skipAuth {
		if a.mockUser.ID == "" {
			return User{}, errAuthNotConfigured
		}
		return a.mockUser, nil
	}

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return User{}, fmt.Errorf("%w: missing bearer token", ErrTokenRejected)
	}
	if user, ok := a.cache.get(token); ok {
		return user, nil
	}

	user, err := a.verifier.Verify(r.Context(), token)
	if err != nil {
		return User{}, err
	}
	a.cache.put(token, user)
	return user, nil
}

func bearerToken(value string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(value), " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || strings.ContainsAny(token, " \t") || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}

type supabaseVerifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type supabaseUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Sub          string         `json:"sub"`
	UserMetadata map[string]any `json:"user_metadata"`
	User         struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	} `json:"user"`
}

func newSupabaseVerifier(cfg config.SupabaseConfig) *supabaseVerifier {
	timeout := cfg.AuthTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &supabaseVerifier{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.PublishableKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Verify asks Supabase who owns the token. 401 and 403 mean the token is bad;
// transport errors and other statuses mean Supabase could not answer.
func (v *supabaseVerifier) Verify(ctx context.Context, token string) (User, error) {
	if v.baseURL == "" || v.apiKey == "" {
		return User{}, errAuthNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return User{}, fmt.Errorf("%w: supabase status %d", ErrTokenRejected, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return User{}, fmt.Errorf("%w: supabase status %d", ErrAuthUnavailable, resp.StatusCode)
	}

	var payload supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, fmt.Errorf("%w: decode user: %v", ErrAuthUnavailable, err)
	}

	user := User{
		ID:        firstNonEmpty(payload.ID, payload.Sub, payload.User.ID, payload.User.Sub),
		Email:     payload.Email,
		Name:      firstNonEmpty(metadataString(payload.UserMetadata, "name"), metadataString(payload.UserMetadata, "full_name")),
		AvatarURL: metadataString(payload.UserMetadata, "avatar_url"),
	}
	if user.ID == "" {
		return User{}, fmt.Errorf("%w: no user id in response", ErrTokenRejected)
	}
	return user, nil
}

// tokenCache remembers verified tokens for ttl. A zero ttl disables it.
type tokenCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cachedUser
}

type cachedUser struct {
	user    User
	expires time.Time
}

func newTokenCache(ttl time.Duration, now func() time.Time) *tokenCache {
	return &tokenCache{ttl: ttl, now: now, entries: make(map[string]cachedUser)}
}

func (c *tokenCache) get(token string) (User, bool) {
	if c.ttl <= 0 {
		return User{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[token]
	if !ok {
		return User{}, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, token)
		return User{}, false
	}
	return entry.user, true
}

func (c *tokenCache) put(token string, user User) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, key)
		}
	}
	c.entries[token] = cachedUser{user: user, expires: now.Add(c.ttl)}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func metadataString(values map[string]any, key string) string {
	value, _ := values[key].(string)
	return value
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
