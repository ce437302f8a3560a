package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"

	"hubctl/internal/api"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates a connection failure to an endpoint.
// It wraps the underlying error and provides categorization for better user feedback.
type ConnectionError struct {
	// Endpoint is the URL that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error returns the failure with guidance matching its type.
func (e *ConnectionError) Error() string {
	var hint string
	switch e.Type {
	case ConnectionErrorTLS:
		hint = `TLS certificate verification failed.
Self-signed or expired certificates are not accepted.`
	case ConnectionErrorDNS:
		hint = `DNS resolution failed.
Check the host name of the endpoint.`
	case ConnectionErrorTimeout:
		hint = `The request timed out.
Check your network connection and try again.`
	case ConnectionErrorNetwork:
		hint = `Connection failed.
The server is unreachable or refused the connection.`
	default:
		hint = "Connection failed."
	}
	return fmt.Sprintf(`%s for %s: %v

%s

To change the endpoint, run:
  hubctl profile set endpoint <url>`, e.Type, e.Endpoint, e.Reason, hint)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ConnectionError) Is(target error) bool {
	_, ok := target.(*ConnectionError)
	return ok
}

// ClassifyConnectionError categorizes a failed API request that never got an
// HTTP response. It returns nil for a nil error.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}
	return &ConnectionError{Endpoint: endpoint, Type: connectionErrorType(err), Reason: err}
}

// connectionErrorType inspects the chain net/http builds below *url.Error;
// retryablehttp keeps it intact when it gives up.
func connectionErrorType(err error) ConnectionErrorType {
	var (
		verifyErr    *tls.CertificateVerificationError
		hostErr      x509.HostnameError
		authorityErr x509.UnknownAuthorityError
		invalidErr   x509.CertificateInvalidError
		dnsErr       *net.DNSError
		netErr       net.Error
		opErr        *net.OpError
	)

	switch {
	case errors.As(err, &verifyErr), errors.As(err, &hostErr),
		errors.As(err, &authorityErr), errors.As(err, &invalidErr):
		return ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		return ConnectionErrorDNS
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return ConnectionErrorTimeout
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET),
		errors.As(err, &opErr) && opErr.Op == "dial":
		return ConnectionErrorNetwork
	}
	return ConnectionErrorUnknown
}

// AuthRequiredError indicates the API rejected the request for lack of a
// valid token.
type AuthRequiredError struct {
	// Endpoint is the URL that requires authentication.
	Endpoint string
	// Profile is the profile the token was read from.
	Profile string
	Reason  error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf(`Authentication required for %s

To store a token in profile %q, run:
  hubctl profile set token <token> --profile %s

Or set the %s environment variable.`, e.Endpoint, e.Profile, e.Profile, TokenEnvVar)
}

// Unwrap returns the underlying error.
func (e *AuthRequiredError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthRequiredError) Is(target error) bool {
	_, ok := target.(*AuthRequiredError)
	return ok
}

// ExplainAPIError turns transport and 401 failures into errors with guidance.
// Other errors, including other HTTP statuses, are returned unchanged.
func ExplainAPIError(err error, endpoint, profileName string) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		return &AuthRequiredError{Endpoint: endpoint, Profile: profileName, Reason: err}
	}
	if api.StatusCode(err) != 0 {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyConnectionError(err, endpoint)
	}
	return err
}
