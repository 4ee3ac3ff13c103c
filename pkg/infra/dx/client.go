package dx

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/domain/types"
)

const (
	// DefaultConnectTimeout bounds TCP connect and TLS handshake
	DefaultConnectTimeout = 10 * time.Second
	// DefaultReadTimeout bounds waiting for the response
	DefaultReadTimeout = 10 * time.Second
)

// HTTPClient is the subset of *http.Client used by Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type config struct {
	connectTimeout time.Duration
	readTimeout    time.Duration
	httpClient     HTTPClient
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithConnectTimeout sets the connect timeout
func WithConnectTimeout(d time.Duration) Option {
	return func(c *config) {
		c.connectTimeout = d
	}
}

// WithReadTimeout sets the response timeout
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) {
		c.readTimeout = d
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests. Timeouts are
// then the responsibility of the given client.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// Client delivers pipeline run payloads to the DX API
type Client struct {
	credentials interfaces.CredentialStore
	httpClient  HTTPClient
}

// NewClient creates a new DX client resolving its token from credentials
func NewClient(credentials interfaces.CredentialStore, opts ...Option) *Client {
	cfg := &config{
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg.connectTimeout, cfg.readTimeout)
	}

	return &Client{
		credentials: credentials,
		httpClient:  httpClient,
	}
}

func newHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = readTimeout

	return &http.Client{
		Transport: transport,
		Timeout:   connectTimeout + readTimeout,
	}
}

// Deliver sends payload to {BaseURL}/api/pipelineRuns.sync once. The run is
// the scope used to look up the API token. Delivery is not cancelled by ctx.
func (c *Client) Deliver(ctx context.Context, cfg *model.FilterConfig, payload []byte, run *model.Run) model.DeliveryOutcome {
	logger := ctxlog.From(ctx)

	if !cfg.IsConfigured() {
		logger.Info("DX API base path not configured, skipping")
		return model.Skipped(model.ReasonNotConfigured)
	}

	token, ok := c.credentials.Lookup(ctx, types.CredentialID, run.Job.FullName)
	if !ok {
		logger.Info("DX credentials not found", "credential_id", types.CredentialID)
		return model.Skipped(model.ReasonCredentialsMissing)
	}

	url := cfg.SyncURL(types.SyncPath)
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return model.Failed(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Failed(err.Error())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return model.Delivered(resp.StatusCode)
	}
	return model.Failed("http " + strconv.Itoa(resp.StatusCode))
}
