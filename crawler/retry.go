package crawler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lukemcguire/llmscheck/result"
)

// checkWithFallback issues a HEAD request and, only when it times out, a
// single GET with the same timeout. Errors of any other kind are returned
// as-is; the fallback is attempted at most once.
func (v *Validator) checkWithFallback(ctx context.Context, rawURL string) (int, error) {
	statusCode, err := v.probe(ctx, http.MethodHead, rawURL)
	if err == nil || !shouldFallback(err) {
		return statusCode, err
	}

	statusCode, err = v.probe(ctx, http.MethodGet, rawURL)
	if err != nil {
		return 0, fmt.Errorf("GET after HEAD timeout: %w", err)
	}
	return statusCode, nil
}

// shouldFallback reports whether a failed HEAD warrants the GET fallback.
// Only timeouts qualify.
func shouldFallback(err error) bool {
	return result.ClassifyError(err) == result.CategoryTimeout
}
