package result

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

// timeoutErr mimics the error http.Client returns when Client.Timeout fires.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "Client.Timeout exceeded while awaiting headers" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func wrapURL(err error) error {
	return &url.Error{Op: "Head", URL: "https://example.com", Err: err}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, CategoryUnknown},
		{"deadline exceeded", wrapURL(context.DeadlineExceeded), CategoryTimeout},
		{"client timeout", wrapURL(timeoutErr{}), CategoryTimeout},
		{"dns failure", wrapURL(&net.DNSError{Err: "no such host", Name: "example.invalid"}), CategoryDNSFailure},
		{"dns lookup timeout", wrapURL(&net.DNSError{Err: "i/o timeout", Name: "slow.example", IsTimeout: true}), CategoryTimeout},
		{"deadline during dns", wrapURL(&net.DNSError{Err: "lookup slow.example", Name: "slow.example", UnwrapErr: context.DeadlineExceeded}), CategoryTimeout},
		{
			"connection refused",
			wrapURL(&net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}),
			CategoryConnectionRefused,
		},
		{"redirect loop", wrapURL(fmt.Errorf("after 10 hops: %w", ErrTooManyRedirects)), CategoryRedirectLoop},
		{"invalid request", fmt.Errorf("%w: bad host", ErrInvalidRequest), CategoryInvalidRequest},
		{"unknown authority", wrapURL(x509.UnknownAuthorityError{}), CategoryTLS},
		{"hostname mismatch", wrapURL(x509.HostnameError{Host: "example.com", Certificate: &x509.Certificate{}}), CategoryTLS},
		{"canceled", wrapURL(context.Canceled), CategoryUnknown},
		{"other", errors.New("boom"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code int
		want ErrorCategory
	}{
		{400, Category4xx},
		{404, Category4xx},
		{499, Category4xx},
		{500, Category5xx},
		{503, Category5xx},
		{600, CategoryUnexpectedStatus},
		{199, CategoryUnexpectedStatus},
		{100, CategoryUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.code))
		})
	}
}

func TestDescribeError(t *testing.T) {
	dnsErr := wrapURL(&net.DNSError{Err: "no such host", Name: "example.invalid"})
	assert.Equal(t, "DNS resolution failed for example.invalid", DescribeError(CategoryDNSFailure, dnsErr))
	assert.Equal(t, "Request timed out", DescribeError(CategoryTimeout, wrapURL(context.DeadlineExceeded)))
	assert.Equal(t, "Connection refused", DescribeError(CategoryConnectionRefused, errors.New("x")))
	assert.Equal(t, "Too many redirects", DescribeError(CategoryRedirectLoop, wrapURL(ErrTooManyRedirects)))
	assert.Equal(t, "Request failed: boom", DescribeError(CategoryUnknown, wrapURL(errors.New("boom"))))
	assert.Equal(t, "Status 404", DescribeStatus(404))
}

func TestFormatCategory(t *testing.T) {
	tests := []struct {
		cat  ErrorCategory
		want string
	}{
		{CategoryTimeout, "Timeouts"},
		{CategoryDNSFailure, "DNS Failures"},
		{CategoryConnectionRefused, "Connection Refused"},
		{CategoryTLS, "TLS Errors"},
		{CategoryRedirectLoop, "Redirect Loops"},
		{CategoryInvalidRequest, "Invalid Requests"},
		{Category4xx, "Client Errors (4xx)"},
		{Category5xx, "Server Errors (5xx)"},
		{CategoryUnexpectedStatus, "Unexpected Status"},
		{CategoryFileError, "Unreadable Files"},
		{CategoryUnknown, "Other Errors"},
	}

	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCategory(tt.cat))
		})
	}
}
