package inpost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// oauthClientID is the fixed client identifier the token endpoint
	// expects on every refresh exchange.
	oauthClientID = "inpost-mobile"

	// tokenRefreshMargin is how close to expiry the access token may get
	// before a refresh is attempted.
	tokenRefreshMargin = 5 * time.Minute
)

// TokenManager owns the access/refresh token pair for one client. It
// refreshes the pair before expiry, rewrites the session's Authorization
// header and hands the new tokens to the injected handler so the caller
// can persist them. Only one refresh exchange is ever in flight.
type TokenManager struct {
	logger      *zap.Logger
	http        *httpClient
	refreshURL  string
	onNewTokens func(AuthTokens)
	now         func() time.Time

	mu     sync.Mutex
	tokens AuthTokens
}

func newTokenManager(logger *zap.Logger, http *httpClient, refreshURL string, tokens AuthTokens, onNewTokens func(AuthTokens)) *TokenManager {
	return &TokenManager{
		logger:      logger,
		http:        http,
		refreshURL:  refreshURL,
		onNewTokens: onNewTokens,
		now:         time.Now,
		tokens:      tokens,
	}
}

// Tokens returns a copy of the current token pair.
func (t *TokenManager) Tokens() AuthTokens {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tokens
}

// EnsureValid refreshes the token pair when the access token is about to
// expire. A failed refresh is logged and swallowed: the caller proceeds
// with the stale token and the provider's rejection, if any, surfaces
// through the next API call. Concurrent callers serialize on the lock,
// so an in-flight refresh is never duplicated.
func (t *TokenManager) EnsureValid(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.expiringSoon() {
		return
	}
	if _, err := t.refreshLocked(ctx); err != nil {
		t.logger.Warn("Token refresh failed, continuing with current token", zap.Error(err))
	}
}

// Refresh forces a token exchange and returns the new pair. Unlike
// EnsureValid it surfaces the failure to the caller.
func (t *TokenManager) Refresh(ctx context.Context) (AuthTokens, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refreshLocked(ctx)
}

// expiringSoon reads the expiry from the access token's exp claim. The
// token is the source of truth rather than the expires_in counter, since
// stored tokens may be reused long after they were issued. An unreadable
// token counts as expiring.
func (t *TokenManager) expiringSoon() bool {
	expiry, ok := jwtExpiry(t.tokens.AccessToken)
	if !ok {
		return true
	}
	return t.now().Add(tokenRefreshMargin).After(expiry)
}

func (t *TokenManager) refreshLocked(ctx context.Context) (AuthTokens, error) {
	if t.tokens.RefreshToken == "" {
		return AuthTokens{}, &ApiClientError{Message: "no refresh token available"}
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", t.tokens.RefreshToken)
	form.Set("client_id", oauthClientID)

	resp, err := t.http.PostForm(ctx, t.refreshURL, form, nil)
	if err != nil {
		return AuthTokens{}, &ApiClientError{Message: "token refresh request failed", Cause: err}
	}
	if resp.IsError() {
		return AuthTokens{}, &ApiClientError{Message: fmt.Sprintf("refresh failed: status %d", resp.Status)}
	}

	tokens, err := decodeAuthTokens(resp.Body)
	if err != nil {
		return AuthTokens{}, &ApiClientError{Message: "cannot decode token response", Cause: err}
	}

	t.tokens = *tokens
	t.http.SetHeader("Authorization", tokens.TokenType+" "+tokens.AccessToken)
	t.logger.Info("Access token refreshed")

	if t.onNewTokens != nil {
		t.onNewTokens(*tokens)
	}
	return *tokens, nil
}

// jwtExpiry extracts the exp claim from an access token without
// verifying the signature; only the expiry matters here.
func jwtExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	var claims struct {
		Exp float64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(claims.Exp), 0), true
}
