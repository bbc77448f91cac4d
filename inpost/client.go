package inpost

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL     = "https://api-inmobile-pl.easypack24.net"
	trackedParcelsPath = "/v1/parcels/tracked"
	profilePath        = "/v1/profile"
	authenticatePath   = "/v1/authenticate"

	// DefaultParcelLockersURL is the public locker directory feed.
	DefaultParcelLockersURL = "https://inpost.pl/sites/default/files/points.json"

	// profileUserAgent must accompany profile requests; without it the
	// provider answers 500.
	profileUserAgent = "InPost-Mobile/3.19.0 (Android)"

	defaultTimeout       = 30 * time.Second
	defaultPublicTimeout = 60 * time.Second
)

// Config is the client configuration surface handed in by the host.
type Config struct {
	AccessToken  string
	RefreshToken string

	// IgnoredEnRouteStatuses lists en-route statuses excluded from the
	// en-route grouping entirely.
	IgnoredEnRouteStatuses []string

	// ShowOnlyOwnParcels drops parcels not owned by the user before
	// aggregation.
	ShowOnlyOwnParcels bool

	// HTTPTimeout bounds authenticated calls; zero means the default.
	HTTPTimeout time.Duration

	// ParcelLockersURL overrides the public locker feed URL.
	ParcelLockersURL string

	// BaseURL overrides the API host, for tests.
	BaseURL string

	// Language selects the Accept-Language sent to the API.
	Language string

	// OnNewTokens is invoked synchronously with every refreshed token
	// pair so the host can persist it.
	OnNewTokens func(AuthTokens)
}

// Client talks to the InPost APIs: tracked parcels and profile over the
// authenticated session, the locker directory over a public one. All
// failures cross the boundary as *ApiClientError.
type Client struct {
	logger     *zap.Logger
	http       *httpClient
	public     *httpClient
	tokens     *TokenManager
	baseURL    string
	lockersURL string
	ownOnly    bool
	ignored    map[string]bool
}

func NewClient(logger *zap.Logger, cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	lockersURL := cfg.ParcelLockersURL
	if lockersURL == "" {
		lockersURL = DefaultParcelLockersURL
	}
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	authenticated := newHTTPClient(timeout)
	authenticated.SetHeader("Accept", "application/json")
	authenticated.SetHeader("Accept-Language", languageCode(cfg.Language))
	if cfg.AccessToken != "" {
		authenticated.SetHeader("Authorization", "Bearer "+cfg.AccessToken)
	}

	ignored := make(map[string]bool, len(cfg.IgnoredEnRouteStatuses))
	for _, status := range cfg.IgnoredEnRouteStatuses {
		ignored[status] = true
	}

	initial := AuthTokens{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		TokenType:    "Bearer",
	}

	return &Client{
		logger:     logger,
		http:       authenticated,
		public:     newHTTPClient(defaultPublicTimeout),
		tokens:     newTokenManager(logger, authenticated, baseURL+authenticatePath, initial, cfg.OnNewTokens),
		baseURL:    baseURL,
		lockersURL: lockersURL,
		ownOnly:    cfg.ShowOnlyOwnParcels,
		ignored:    ignored,
	}
}

// TokenManager exposes the client's token lifecycle, e.g. for a manual
// refresh triggered by the host.
func (c *Client) TokenManager() *TokenManager {
	return c.tokens
}

// GetParcels fetches the tracked parcels and aggregates them into the
// per-locker summary.
func (c *Client) GetParcels(ctx context.Context) (*ParcelsSummary, error) {
	c.tokens.EnsureValid(ctx)

	resp, err := c.http.Get(ctx, c.baseURL+trackedParcelsPath, nil)
	if err != nil {
		return nil, &ApiClientError{Message: "parcels request failed", Cause: err}
	}
	if resp.IsError() {
		return nil, &ApiClientError{Message: fmt.Sprintf("parcels request failed. Status: %d", resp.Status)}
	}

	normalized := ConvertKeysToSnakeCase(resp.Body)
	parcels, err := decodeTrackedParcels(normalized)
	if err != nil {
		return nil, &ApiClientError{Message: "cannot decode parcels response", Cause: err}
	}

	summary := buildParcelsSummary(parcels, c.ownOnly, c.ignored)
	c.logger.Debug("Parcels summary built",
		zap.Int("all", summary.AllCount),
		zap.Int("ready_for_pickup", summary.ReadyForPickupCount),
		zap.Int("en_route", summary.EnRouteCount),
	)
	return summary, nil
}

// GetProfile fetches the user profile. The endpoint insists on a mobile
// user agent.
func (c *Client) GetProfile(ctx context.Context) (*UserProfile, error) {
	c.tokens.EnsureValid(ctx)

	headers := map[string]string{"User-Agent": profileUserAgent}
	resp, err := c.http.Get(ctx, c.baseURL+profilePath, headers)
	if err != nil {
		return nil, &ApiClientError{Message: "profile request failed", Cause: err}
	}
	if resp.IsError() {
		return nil, &ApiClientError{Message: fmt.Sprintf("profile request failed. Status: %d", resp.Status)}
	}

	profile, err := decodeProfile(ConvertKeysToSnakeCase(resp.Body))
	if err != nil {
		return nil, &ApiClientError{Message: "cannot decode profile response", Cause: err}
	}
	return profile, nil
}

// GetParcelLockersList fetches the public locker directory. No
// authentication and no key normalization: the feed is snake_cased at
// the source.
func (c *Client) GetParcelLockersList(ctx context.Context) ([]ParcelLocker, error) {
	resp, err := c.public.Get(ctx, c.lockersURL, nil)
	if err != nil {
		return nil, &ApiClientError{Message: "locker list request failed", Cause: err}
	}
	if resp.IsError() {
		return nil, &ApiClientError{Message: fmt.Sprintf("locker list request failed. Status: %d", resp.Status)}
	}

	list, err := decodeLockerList(resp.Body)
	if err != nil {
		return nil, &ApiClientError{Message: "cannot decode locker list response", Cause: err}
	}
	return list.Items, nil
}

// Close releases both API sessions. Idempotent.
func (c *Client) Close() {
	c.http.Close()
	c.public.Close()
}
