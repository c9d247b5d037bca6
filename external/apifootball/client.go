package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/gcamargo/footdata/internal/platform/logging"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	maxBodyBytes   = 6 << 20
)

var apiKeyHeaderRegex = regexp.MustCompile(`x-apisports-key:\s*[^\s"']+`)

// ErrTransport marks DNS/connect/timeout failures. Callers convert it
// into a synthetic failed page rather than letting it propagate.
var ErrTransport = crerr.New("apifootball transport failure")

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int
	Logger            *logging.Logger
}

// Client is a thin authenticated fetcher. It never returns an error for
// ordinary HTTP status codes; only transport-level failures surface as
// errors, wrapped with ErrTransport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 240
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		limiter:    limiter,
		logger:     logger,
	}
}

// Get fetches one page. A missing credential is reported as a synthetic
// 401 with a provider-shaped errors object so it flows through the same
// capture and checkpoint path as any other failed page.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (int, map[string]any, error) {
	if c.apiKey == "" {
		return http.StatusUnauthorized, map[string]any{
			"errors": map[string]any{"auth": "missing_api_key"},
		}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%w: rate limiter wait: %v", ErrTransport, err)
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		sanitized := sanitizeSensitiveText(err.Error(), c.apiKey)
		c.logger.WarnContext(ctx, "apifootball request failed", "path", path, "error", sanitized)
		return 0, nil, fmt.Errorf("%w: send request: %s", ErrTransport, sanitized)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response body: %v", ErrTransport, err)
	}

	return resp.StatusCode, decodeBody(raw), nil
}

// decodeBody coerces anything that is not a JSON object into a
// provider-shaped error body so downstream classification stays uniform.
func decodeBody(raw []byte) map[string]any {
	var doc any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return map[string]any{
			"errors": map[string]any{"decode": err.Error()},
			"raw":    abbreviate(raw),
		}
	}
	payload, ok := doc.(map[string]any)
	if !ok {
		return map[string]any{
			"errors": map[string]any{"body": "non_object_payload"},
			"raw":    abbreviate(raw),
		}
	}
	return payload
}

func abbreviate(raw []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(raw))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	value = apiKeyHeaderRegex.ReplaceAllString(value, "x-apisports-key: REDACTED")
	return value
}
