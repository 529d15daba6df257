package api

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	APIVersion = "2.1"

	ListPath = "/v2.1/clipboard/list.json"
	ItemPath = "/v2.1/clipboard/item"

	DefaultTimeout = 30 * time.Second
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ HTTPDoer = (*http.Client)(nil)

type Client struct {
	baseURL    string
	creds      Credentials
	httpClient HTTPDoer
	logger     *slog.Logger
}

type options struct {
	timeout    time.Duration
	httpClient HTTPDoer
	logger     *slog.Logger
}

type Option func(*options)

// WithTimeout bounds every request made by the client, including the probe.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient replaces the built-in transport. verifyTLS is then up to the
// supplied client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewClient probes serverURL with a single unauthenticated GET and returns a
// client bound to it if the server answers 200. The probe only checks
// reachability, not that the server implements the clipboard API.
func NewClient(ctx context.Context, serverURL string, creds Credentials, verifyTLS bool, opts ...Option) (*Client, error) {
	o := options{
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkServerURL(serverURL); err != nil {
		return nil, err
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(o.timeout, verifyTLS)
	}

	c := &Client{
		creds:      creds,
		httpClient: httpClient,
		logger:     o.logger,
	}

	if err := c.probe(ctx, serverURL); err != nil {
		return nil, err
	}

	c.baseURL = strings.TrimSuffix(serverURL, "/")
	c.logger.Debug("clipboard server validated", "server", c.baseURL, "verify_tls", verifyTLS)

	return c, nil
}

func newHTTPClient(timeout time.Duration, verifyTLS bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !verifyTLS, //nolint:gosec // opt-in via verify_tls
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func checkServerURL(serverURL string) error {
	if serverURL == "" {
		return &ConfigurationError{Field: "server", Message: "server URL is required"}
	}

	u, err := url.Parse(serverURL)
	if err != nil {
		return &ConfigurationError{Field: "server", Message: fmt.Sprintf("invalid server URL %q: %v", serverURL, err)}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigurationError{Field: "server", Message: fmt.Sprintf("unsupported scheme %q, expected http or https", u.Scheme)}
	}

	if u.Host == "" {
		return &ConfigurationError{Field: "server", Message: fmt.Sprintf("server URL %q has no host", serverURL)}
	}

	return nil
}

func (c *Client) probe(ctx context.Context, serverURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL, nil)
	if err != nil {
		return &ServerUnreachableError{URL: serverURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTLSError(err) {
			return &ServerUnreachableError{URL: serverURL, Err: fmt.Errorf("failed to verify the TLS certificate, retry with TLS verification disabled: %w", err)}
		}
		return &ServerUnreachableError{URL: serverURL, Err: err}
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused by the next request.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &ServerUnreachableError{URL: serverURL, StatusCode: resp.StatusCode}
	}

	return nil
}

func isTLSError(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		unknownAuth  x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidCert  x509.CertificateInvalidError
		recordHdrErr tls.RecordHeaderError
	)

	return errors.As(err, &verifyErr) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidCert) ||
		errors.As(err, &recordHdrErr)
}

// BaseURL returns the validated endpoint without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Username() string {
	return c.creds.Username()
}
