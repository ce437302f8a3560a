package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
	"testing"

	"hubctl/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionErrorType(t *testing.T) {
	tests := []struct {
		errType  ConnectionErrorType
		expected string
	}{
		{ConnectionErrorUnknown, "Connection error"},
		{ConnectionErrorTLS, "TLS certificate error"},
		{ConnectionErrorNetwork, "Network error"},
		{ConnectionErrorTimeout, "Connection timeout"},
		{ConnectionErrorDNS, "DNS resolution error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		errType  ConnectionErrorType
		contains []string
	}{
		{"TLS", ConnectionErrorTLS, []string{"TLS certificate verification failed", "Self-signed"}},
		{"network", ConnectionErrorNetwork, []string{"Connection failed", "unreachable"}},
		{"timeout", ConnectionErrorTimeout, []string{"timed out"}},
		{"DNS", ConnectionErrorDNS, []string{"DNS resolution failed"}},
		{"unknown", ConnectionErrorUnknown, []string{"Connection failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ConnectionError{Endpoint: "https://api.example.com", Type: tt.errType, Reason: errors.New("underlying reason")}
			msg := err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
			assert.Contains(t, msg, "https://api.example.com")
			assert.Contains(t, msg, "underlying reason")
			assert.Contains(t, msg, "hubctl profile set endpoint")
		})
	}

	t.Run("unwrap and Is", func(t *testing.T) {
		reason := errors.New("connection refused")
		err := fmt.Errorf("wrapped: %w", &ConnectionError{Type: ConnectionErrorNetwork, Reason: reason})
		assert.ErrorIs(t, err, reason)
		assert.ErrorIs(t, err, &ConnectionError{})
		assert.NotErrorIs(t, errors.New("other"), &ConnectionError{})
	})
}

func refusedDial() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: &os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED}}
}

func TestClassifyConnectionError(t *testing.T) {
	const endpoint = "https://api.example.com"
	get := func(err error) error { return &url.Error{Op: "Get", URL: endpoint + "/distchannels", Err: err} }
	givenUp := func(err error) error {
		return fmt.Errorf("GET %s/distchannels giving up after 4 attempt(s): %w", endpoint, err)
	}

	tests := []struct {
		name string
		err  error
		want ConnectionErrorType
	}{
		{"unknown authority", get(&tls.CertificateVerificationError{Err: x509.UnknownAuthorityError{}}), ConnectionErrorTLS},
		{"hostname mismatch", get(x509.HostnameError{Certificate: &x509.Certificate{}, Host: "api.example.com"}), ConnectionErrorTLS},
		{"expired", givenUp(get(x509.CertificateInvalidError{Reason: x509.Expired})), ConnectionErrorTLS},
		{"DNS", get(&net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "api.example.com"}}), ConnectionErrorDNS},
		{"read deadline", get(&net.OpError{Op: "read", Err: os.ErrDeadlineExceeded}), ConnectionErrorTimeout},
		{"context deadline", givenUp(get(context.DeadlineExceeded)), ConnectionErrorTimeout},
		{"connection refused", givenUp(get(refusedDial())), ConnectionErrorNetwork},
		{"connection reset", get(&net.OpError{Op: "read", Err: &os.SyscallError{Syscall: "read", Err: syscall.ECONNRESET}}), ConnectionErrorNetwork},
		{"unknown", errors.New("some random error"), ConnectionErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyConnectionError(tt.err, endpoint)
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Type)
			assert.ErrorIs(t, result, tt.err)
		})
	}

	assert.Nil(t, ClassifyConnectionError(nil, endpoint))
}

func TestAuthRequiredError(t *testing.T) {
	err := &AuthRequiredError{Endpoint: "https://api.example.com", Profile: "work"}
	msg := err.Error()

	assert.Contains(t, msg, "https://api.example.com")
	assert.Contains(t, msg, "hubctl profile set token <token> --profile work")
	assert.Contains(t, msg, TokenEnvVar)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), &AuthRequiredError{})
}

func TestExplainAPIError(t *testing.T) {
	const endpoint = "https://api.example.com"

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, ExplainAPIError(nil, endpoint, "default"))
	})

	t.Run("unauthorized", func(t *testing.T) {
		statusErr := &api.StatusError{Method: http.MethodGet, StatusCode: http.StatusUnauthorized}
		err := ExplainAPIError(statusErr, endpoint, "default")

		var authErr *AuthRequiredError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "default", authErr.Profile)
		assert.ErrorIs(t, err, statusErr)
	})

	t.Run("other status unchanged", func(t *testing.T) {
		statusErr := &api.StatusError{StatusCode: http.StatusNotFound}
		assert.Same(t, statusErr, ExplainAPIError(statusErr, endpoint, "default"))
	})

	t.Run("transport failure", func(t *testing.T) {
		urlErr := &url.Error{Op: "Get", URL: endpoint, Err: refusedDial()}
		err := ExplainAPIError(fmt.Errorf("GET failed: %w", urlErr), endpoint, "default")

		var connErr *ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, ConnectionErrorNetwork, connErr.Type)
	})
}
