package loader

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/robbyt/go-princeofversions/loader/httpauth"
)

const (
	// DefaultNetworkTimeout bounds a single HTTP attempt.
	DefaultNetworkTimeout = 60 * time.Second

	// DefaultRetryBackoff is the base delay of the exponential retry backoff.
	DefaultRetryBackoff = 500 * time.Millisecond

	defaultUserAgent = "go-princeofversions/http-loader"
)

// HTTPOptions contains configuration options for the HTTP loader.
// Use DefaultHTTPOptions() to get sensible defaults, then modify as needed.
//
// Example:
//
//	options := loader.DefaultHTTPOptions()
//	options.Timeout = 10 * time.Second
//	options.Authenticator = httpauth.NewBasicAuth("user", "pass")
type HTTPOptions struct {
	// Timeout specifies a time limit for each request attempt.
	Timeout time.Duration

	// TLSConfig specifies the TLS configuration to use
	TLSConfig *tls.Config

	// InsecureSkipVerify skips TLS certificate verification when set to true.
	// Only use this against test servers.
	InsecureSkipVerify bool

	// Authenticator applies credentials to each request. Defaults to httpauth.NoAuth.
	Authenticator httpauth.Authenticator

	// Headers are added to every request.
	Headers map[string]string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// MaxRetries is the number of additional attempts made after a transport
	// error or a 5xx/429 response. Zero disables retries.
	MaxRetries uint64

	// RetryBackoff is the base delay of the exponential backoff between attempts.
	RetryBackoff time.Duration
}

// DefaultHTTPOptions returns default options for the HTTP loader.
//
// Default values:
//   - Timeout: 60 seconds
//   - Authenticator: no authentication
//   - MaxRetries: 0
//   - RetryBackoff: 500ms
func DefaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Timeout:       DefaultNetworkTimeout,
		Authenticator: httpauth.NewNoAuth(),
		Headers:       make(map[string]string),
		UserAgent:     defaultUserAgent,
		RetryBackoff:  DefaultRetryBackoff,
	}
}

// httpRequester is the subset of *http.Client used by FromHTTP.
type httpRequester interface {
	Do(req *http.Request) (*http.Response, error)
}

// FromHTTP loads the configuration from an HTTP or HTTPS URL.
type FromHTTP struct {
	url       string
	sourceURL *url.URL
	options   *HTTPOptions
	client    httpRequester
}

// NewFromHTTP creates a new HTTP loader with the given URL and default options.
func NewFromHTTP(rawURL string) (*FromHTTP, error) {
	return NewFromHTTPWithOptions(rawURL, DefaultHTTPOptions())
}

// NewFromHTTPWithBasicAuth creates an HTTP loader that sends Basic credentials
// when both username and password are set.
func NewFromHTTPWithBasicAuth(rawURL, username, password string, timeout time.Duration) (*FromHTTP, error) {
	options := DefaultHTTPOptions()
	if timeout > 0 {
		options.Timeout = timeout
	}
	if username != "" && password != "" {
		options.Authenticator = httpauth.NewBasicAuth(username, password)
	}
	return NewFromHTTPWithOptions(rawURL, options)
}

// NewFromHTTPWithOptions creates a new HTTP loader with the given URL and custom options.
func NewFromHTTPWithOptions(rawURL string, options *HTTPOptions) (*FromHTTP, error) {
	sourceURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}

	if sourceURL.Scheme != "http" && sourceURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, rawURL)
	}

	if options == nil {
		options = DefaultHTTPOptions()
	}
	// defaults are filled into a copy; the caller's options stay untouched
	opts := *options
	opts.Headers = maps.Clone(options.Headers)
	options = &opts
	if options.Authenticator == nil {
		options.Authenticator = httpauth.NewNoAuth()
	}
	if options.RetryBackoff <= 0 {
		options.RetryBackoff = DefaultRetryBackoff
	}

	client := &http.Client{
		Timeout: options.Timeout,
	}

	if options.InsecureSkipVerify || options.TLSConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if options.TLSConfig != nil {
			transport.TLSClientConfig = options.TLSConfig
		} else {
			transport.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // opt-in for test servers
			}
		}
		client.Transport = transport
	}

	return &FromHTTP{
		url:       rawURL,
		sourceURL: sourceURL,
		options:   options,
		client:    client,
	}, nil
}

// Load fetches the configuration, retrying transient failures according to
// MaxRetries. Non-2xx responses are reported as ErrConfigNotAvailable.
func (l *FromHTTP) Load(ctx context.Context) (string, error) {
	backoff := retry.WithMaxRetries(l.options.MaxRetries, retry.NewExponential(l.options.RetryBackoff))

	var body string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		b, err := l.fetch(ctx)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

func (l *FromHTTP) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range l.options.Headers {
		req.Header.Set(key, value)
	}

	if err := l.options.Authenticator.AuthenticateWithContext(ctx, req); err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}

	if req.Header.Get("User-Agent") == "" {
		ua := l.options.UserAgent
		if ua == "" {
			ua = defaultUserAgent
		}
		req.Header.Set("User-Agent", ua)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", retry.RetryableError(fmt.Errorf("failed to execute HTTP request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("%w: HTTP %d - %s", ErrConfigNotAvailable, resp.StatusCode, resp.Status)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return "", retry.RetryableError(statusErr)
		}
		return "", statusErr
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("failed to read response body: %w", err))
	}
	return string(content), nil
}

// GetSourceURL returns the source URL.
func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}

// String returns a string representation of the HTTP loader.
func (l *FromHTTP) String() string {
	return fmt.Sprintf("loader.FromHTTP{URL: %s, Auth: %s}", l.url, l.options.Authenticator.Name())
}
