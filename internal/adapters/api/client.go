// Package api is the HTTP client of the wallet backend. It gates calls on
// authentication, memoizes GET responses, registers every account-scoped
// request for cancellation, and drops responses that arrive after the active
// account changed.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/adapters/abort"
	"github.com/bnema/pft-wallet-cli/internal/adapters/cache"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 30 * time.Second
	recheckTimeout        = 5 * time.Second
)

// Connectivity is notified when a request fails without a response.
type Connectivity interface {
	ManualCheck(ctx context.Context) bool
}

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Gate           ports.AuthGate
	Cache          *cache.RequestCache
	Aborts         *abort.Registry
	Connectivity   Connectivity
	Logger         *zerolog.Logger
}

type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	timeout      time.Duration
	gate         ports.AuthGate
	cache        *cache.RequestCache
	aborts       *abort.Registry
	connectivity Connectivity
	logger       zerolog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Gate == nil {
		return nil, errors.New("auth gate is required")
	}

	client := &Client{
		baseURL:      baseURL,
		httpClient:   cfg.HTTPClient,
		timeout:      cfg.RequestTimeout,
		gate:         cfg.Gate,
		cache:        cfg.Cache,
		aborts:       cfg.Aborts,
		connectivity: cfg.Connectivity,
		logger:       log.Logger,
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	if client.timeout <= 0 {
		client.timeout = defaultRequestTimeout
	}
	if client.cache == nil {
		client.cache = cache.New(cache.Config{})
	}
	if client.aborts == nil {
		client.aborts = abort.NewRegistry()
	}
	if cfg.Logger != nil {
		client.logger = *cfg.Logger
	}
	client.logger = client.logger.With().Str("component", "api").Logger()

	return client, nil
}

type requestOptions struct {
	skipCache bool
	account   string
	params    url.Values
}

type RequestOption func(*requestOptions)

// WithoutCache bypasses the cache read of a GET. The fresh result is still
// stored.
func WithoutCache() RequestOption {
	return func(o *requestOptions) {
		o.skipCache = true
	}
}

// WithAccount scopes a request to account when the endpoint path does not
// name it.
func WithAccount(account domain.Address) RequestOption {
	return func(o *requestOptions) {
		o.account = string(account)
	}
}

func WithParams(params url.Values) RequestOption {
	return func(o *requestOptions) {
		o.params = params
	}
}

// Get fetches endpoint and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	options := applyOptions(opts)
	if err := c.authorize(endpoint); err != nil {
		return err
	}

	key := cache.Key(endpoint, options.params)
	if !options.skipCache {
		if payload, ok := c.cache.Get(key); ok {
			c.logger.Debug().Str("endpoint", endpoint).Msg("cache hit")
			return decode(endpoint, payload, out)
		}
	}

	payload, err := c.do(ctx, http.MethodGet, endpoint, options, nil)
	if err != nil {
		return err
	}

	if err := decode(endpoint, payload, out); err != nil {
		return err
	}
	c.cache.Set(key, payload)

	return nil
}

// Post sends body as JSON and decodes the response into out when out is not
// nil. A successful POST invalidates the cached entries of its account.
func (c *Client) Post(ctx context.Context, endpoint string, body any, out any, opts ...RequestOption) error {
	options := applyOptions(opts)
	if err := c.authorize(endpoint); err != nil {
		return err
	}

	payload, err := c.do(ctx, http.MethodPost, endpoint, options, body)
	if err != nil {
		return err
	}

	if account := options.resolveAccount(endpoint); account != "" {
		c.cache.InvalidateAccount(account)
	}

	return decode(endpoint, payload, out)
}

// Cache exposes the request cache for session teardown.
func (c *Client) Cache() *cache.RequestCache {
	return c.cache
}

// Aborts exposes the abort registry for account switches.
func (c *Client) Aborts() *abort.Registry {
	return c.aborts
}

func (c *Client) authorize(endpoint string) error {
	if c.gate.IsAuthenticated() || IsPublicEndpoint(endpoint) {
		return nil
	}

	return &domain.AuthenticationRequiredError{Endpoint: endpoint}
}

func (c *Client) do(ctx context.Context, method, endpoint string, options requestOptions, body any) ([]byte, error) {
	reqURL, err := c.buildURL(endpoint, options.params)
	if err != nil {
		return nil, err
	}

	account := options.resolveAccount(endpoint)
	generation := c.gate.Generation()

	var handle *abort.Handle
	if account != "" {
		handle = c.aborts.CreateHandle(ctx, account)
		defer handle.Release()
		ctx = handle.Context()
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(requestCtx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With().Str("method", method).Str("endpoint", endpoint).Str("account", account).Logger()

	resp, err := c.httpClient.Do(req)
	if handle != nil {
		err = handle.Err(err)
	}
	if err != nil {
		if errors.Is(err, domain.ErrRequestAborted) {
			logger.Debug().Msg("request aborted")
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, endpoint, ctxErr)
		}

		logger.Warn().Err(err).Msg("request failed without response")
		c.recheck(ctx)
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, errors.Join(domain.ErrNetworkUnreachable, err))
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if handle != nil {
		err = handle.Err(err)
	}
	if err != nil {
		if errors.Is(err, domain.ErrRequestAborted) {
			return nil, err
		}
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if account != "" && c.gate.Generation() != generation {
		logger.Debug().Uint64("generation", generation).Msg("dropping response of inactive account")
		return nil, domain.ErrStaleAccountResponse
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Debug().Int("status", resp.StatusCode).Msg("api error")
		return nil, &domain.APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}

	return payload, nil
}

func (c *Client) recheck(ctx context.Context) {
	if c.connectivity == nil {
		return
	}

	checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recheckTimeout)
	defer cancel()
	c.connectivity.ManualCheck(checkCtx)
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	if endpoint == "" || !strings.HasPrefix(endpoint, "/") {
		return "", fmt.Errorf("api path %q must start with /", endpoint)
	}

	path, query, _ := strings.Cut(endpoint, "?")
	resolved := *c.baseURL
	resolved.Path = strings.TrimSuffix(c.baseURL.Path, "/") + path
	resolved.RawPath = ""

	values, err := url.ParseQuery(query)
	if err != nil {
		return "", fmt.Errorf("parse api query: %w", err)
	}
	for key, vals := range params {
		for _, val := range vals {
			values.Add(key, val)
		}
	}
	resolved.RawQuery = values.Encode()

	return resolved.String(), nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	return parsed, nil
}

func applyOptions(opts []RequestOption) requestOptions {
	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	return options
}

func (o requestOptions) resolveAccount(endpoint string) string {
	if o.account != "" {
		return o.account
	}

	return InferAccount(endpoint)
}

func decode(endpoint string, payload []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}
