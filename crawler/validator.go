package crawler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lukemcguire/llmscheck/result"
	"github.com/lukemcguire/llmscheck/urlutil"
)

const (
	// DefaultRequestTimeout bounds every single HEAD or GET request.
	DefaultRequestTimeout = 15 * time.Second

	// DefaultMaxRedirects is the number of redirects followed before a link
	// is reported as a redirect loop.
	DefaultMaxRedirects = 10

	// DefaultUserAgent identifies the checker to remote servers.
	DefaultUserAgent = "llmscheck/1.0 (+https://github.com/lukemcguire/llmscheck)"

	// NonHTTPReason is the Skipped reason for links that are not http(s).
	NonHTTPReason = "Non-HTTP(S) URL"
)

// Validator checks the reachability of a single link.
type Validator struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	maxRedirects int
	limiter      *HostLimiter
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithRequestTimeout sets the timeout of each individual request.
func WithRequestTimeout(d time.Duration) ValidatorOption {
	return func(v *Validator) {
		v.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ValidatorOption {
	return func(v *Validator) {
		v.userAgent = ua
	}
}

// WithMaxRedirects sets how many redirects are followed.
func WithMaxRedirects(n int) ValidatorOption {
	return func(v *Validator) {
		v.maxRedirects = n
	}
}

// WithHostLimiter rate-limits requests per host.
func WithHostLimiter(l *HostLimiter) ValidatorOption {
	return func(v *Validator) {
		v.limiter = l
	}
}

// WithHTTPClient replaces the HTTP client. The client's redirect policy is
// left untouched.
func WithHTTPClient(client *http.Client) ValidatorOption {
	return func(v *Validator) {
		v.client = client
	}
}

// NewValidator creates a Validator with a 15s request timeout and no retries.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		timeout:      DefaultRequestTimeout,
		userAgent:    DefaultUserAgent,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.client == nil {
		v.client = &http.Client{CheckRedirect: redirectPolicy(v.maxRedirects)}
	}

	return v
}

// Validate checks rawURL, found in file, and classifies the outcome.
// Non-HTTP(S) links are skipped without touching the network. A HEAD request
// that times out is retried once as GET; any other transport error fails
// immediately.
func (v *Validator) Validate(ctx context.Context, rawURL, file string) result.Outcome {
	if !urlutil.IsHTTPURL(rawURL) {
		return result.Skipped(rawURL, file, NonHTTPReason)
	}

	statusCode, err := v.checkWithFallback(ctx, rawURL)
	if err != nil {
		category := result.ClassifyError(err)
		return result.Failure(rawURL, file, result.DescribeError(category, err), category, 0)
	}

	if statusCode >= 200 && statusCode < 400 {
		return result.Success(rawURL, file, statusCode)
	}
	return result.Failure(rawURL, file, result.DescribeStatus(statusCode), result.ClassifyStatus(statusCode), statusCode)
}

// probe waits for the host's rate limiter, issues a single request and
// returns the response status code. The body is never read.
func (v *Validator) probe(ctx context.Context, method, rawURL string) (int, error) {
	if err := v.limiter.Wait(ctx, urlutil.HostKey(rawURL)); err != nil {
		return 0, fmt.Errorf("wait for rate limiter: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", result.ErrInvalidRequest, err)
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()

	return resp.StatusCode, nil
}

// redirectPolicy stops following redirects after limit hops.
func redirectPolicy(limit int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) >= limit {
			return fmt.Errorf("stopped after %d redirects: %w", limit, result.ErrTooManyRedirects)
		}
		return nil
	}
}
