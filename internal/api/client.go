package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hubctl/internal/formatting"
	"hubctl/pkg/logging"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

const (
	// DefaultRetryMax is the number of retries for failed idempotent requests.
	DefaultRetryMax = 3
	// DefaultTimeout bounds a single attempt.
	DefaultTimeout = 30 * time.Second

	// organizationHeader scopes a request to one organization.
	organizationHeader = "X-ST-Organization"
	requestIDHeader    = "X-Request-Id"

	maxErrorBodyLength = 512
)

// Options configures a Client.
type Options struct {
	// Endpoint is the API base URL, e.g. https://api.smartthings.com.
	Endpoint string
	// Token is sent as a bearer token. Empty sends no Authorization header.
	Token string
	// Organization, when set, is sent with every request.
	Organization string
	RetryMax     int
	Timeout      time.Duration
	UserAgent    string
}

// Client talks to the hub REST API.
type Client struct {
	baseURL      *url.URL
	http         *retryablehttp.Client
	organization string
	userAgent    string
}

// NewClient creates a Client. Requests are retried with backoff on connection
// errors and 5xx or 429 responses. POST requests are only retried on 429.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}
	baseURL, err := url.Parse(strings.TrimSuffix(opts.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", opts.Endpoint, err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", opts.Endpoint)
	}

	rc := retryablehttp.NewClient()
	rc.Logger = leveledLogger{}
	rc.RetryMax = DefaultRetryMax
	if opts.RetryMax > 0 {
		rc.RetryMax = opts.RetryMax
	}
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if opts.Token != "" {
		// oauth2.NewClient wraps the transport of the client stored in the context.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, rc.HTTPClient)
		rc.HTTPClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
	}
	rc.HTTPClient.Timeout = timeout

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "hubctl"
	}

	return &Client{
		baseURL:      baseURL,
		http:         rc,
		organization: opts.Organization,
		userAgent:    userAgent,
	}, nil
}

// WithOrganization returns a copy of c scoped to organizationID.
func (c *Client) WithOrganization(organizationID string) *Client {
	clone := *c
	clone.organization = organizationID
	return &clone
}

// Organization returns the organization the client is scoped to, or "".
func (c *Client) Organization() string {
	return c.organization
}

func (c *Client) resolve(path string, query url.Values) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends a JSON request and decodes a JSON response into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
		logging.Debug("API", "request body: %s", formatting.PrettyJSON(body))
	}

	target := c.resolve(path, query)
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.organization != "" {
		req.Header.Set(organizationHeader, c.organization)
	}

	logging.Debug("API", "%s %s (request %s)", method, target, requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response of %s %s: %w", method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Body:       errorBody(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, target, err)
	}
	return nil
}

func errorBody(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxErrorBodyLength {
		s = s[:maxErrorBodyLength] + "..."
	}
	return s
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.Request != nil && resp.Request.Method == http.MethodPost &&
		resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// page is the envelope of list responses.
type page[T any] struct {
	Items []T `json:"items"`
	Links struct {
		Next *struct {
			Href string `json:"href"`
		} `json:"next"`
	} `json:"_links"`
}

// list fetches every page of a list endpoint.
func list[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var all []T
	next := path
	for next != "" {
		var p page[T]
		if err := c.do(ctx, http.MethodGet, next, query, nil, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Items...)

		next = ""
		if p.Links.Next != nil {
			next = p.Links.Next.Href
			// The next link carries its own query.
			query = nil
		}
	}
	return all, nil
}

// leveledLogger routes retryablehttp logging into the API subsystem.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logging.Error("API", nil, "%s %v", msg, keysAndValues)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug("API", "%s %v", msg, keysAndValues)
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logging.Debug("API", "%s %v", msg, keysAndValues)
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logging.Warn("API", "%s %v", msg, keysAndValues)
}
