package result

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
)

// ErrorCategory represents the classification of a validation failure.
type ErrorCategory string

const (
	CategoryTimeout           ErrorCategory = "timeout"
	CategoryDNSFailure        ErrorCategory = "dns_failure"
	CategoryConnectionRefused ErrorCategory = "connection_refused"
	CategoryTLS               ErrorCategory = "tls_error"
	CategoryRedirectLoop      ErrorCategory = "redirect_loop"
	CategoryInvalidRequest    ErrorCategory = "invalid_request"
	Category4xx               ErrorCategory = "4xx"
	Category5xx               ErrorCategory = "5xx"
	CategoryUnexpectedStatus  ErrorCategory = "unexpected_status"
	CategoryFileError         ErrorCategory = "file_error"
	CategoryUnknown           ErrorCategory = "unknown"
)

var (
	// ErrTooManyRedirects is returned by the HTTP client's redirect policy
	// once the redirect limit is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrInvalidRequest marks a request that could not be built from the URL.
	ErrInvalidRequest = errors.New("invalid request")
)

// ClassifyError determines the category of a transport-level error.
// A resolver error counts as a timeout when the lookup itself timed out or
// the request deadline fired during resolution.
func ClassifyError(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	if errors.Is(err, ErrTooManyRedirects) {
		return CategoryRedirectLoop
	}
	if errors.Is(err, ErrInvalidRequest) {
		return CategoryInvalidRequest
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return CategoryTimeout
		}
		return CategoryDNSFailure
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return CategoryConnectionRefused
	}

	if isTLSError(err) {
		return CategoryTLS
	}

	return CategoryUnknown
}

func isTLSError(err error) bool {
	var certErr *tls.CertificateVerificationError
	var authorityErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	var recordErr tls.RecordHeaderError
	var alertErr tls.AlertError
	return errors.As(err, &certErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &alertErr)
}

// ClassifyStatus maps an HTTP status outside [200, 400) to a category.
func ClassifyStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode <= 499:
		return Category4xx
	case statusCode >= 500 && statusCode <= 599:
		return Category5xx
	default:
		return CategoryUnexpectedStatus
	}
}

// DescribeError returns a human-readable failure reason for a transport error
// already classified as cat.
func DescribeError(cat ErrorCategory, err error) string {
	switch cat {
	case CategoryTimeout:
		return "Request timed out"
	case CategoryDNSFailure:
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.Name != "" {
			return "DNS resolution failed for " + dnsErr.Name
		}
		return "DNS resolution failed"
	case CategoryConnectionRefused:
		return "Connection refused"
	case CategoryTLS:
		return "TLS error: " + innermost(err)
	case CategoryRedirectLoop:
		return "Too many redirects"
	case CategoryInvalidRequest:
		return "Invalid request: " + innermost(err)
	default:
		return "Request failed: " + innermost(err)
	}
}

// DescribeStatus returns the failure reason for a non-success status code.
func DescribeStatus(statusCode int) string {
	return fmt.Sprintf("Status %d", statusCode)
}

// innermost strips the *url.Error wrapper, whose message repeats the method
// and URL already shown next to the reason.
func innermost(err error) string {
	if err == nil {
		return "unknown error"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// FormatCategory returns a human-readable label for an error category.
func FormatCategory(cat ErrorCategory) string {
	switch cat {
	case CategoryTimeout:
		return "Timeouts"
	case CategoryDNSFailure:
		return "DNS Failures"
	case CategoryConnectionRefused:
		return "Connection Refused"
	case CategoryTLS:
		return "TLS Errors"
	case CategoryRedirectLoop:
		return "Redirect Loops"
	case CategoryInvalidRequest:
		return "Invalid Requests"
	case Category4xx:
		return "Client Errors (4xx)"
	case Category5xx:
		return "Server Errors (5xx)"
	case CategoryUnexpectedStatus:
		return "Unexpected Status"
	case CategoryFileError:
		return "Unreadable Files"
	default:
		return "Other Errors"
	}
}
