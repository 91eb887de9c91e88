package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/cwygoda/rentscan/internal/domain"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultMaxBody = 16 << 20
)

// Client is the HTTP adapter for downloading listing pages. A single Client
// is shared by every fetch in a run.
type Client struct {
	client    *http.Client
	transport *http.Transport
	userAgent string
	maxBody   int64
	log       zerolog.Logger
}

type Option func(*Client)

// WithTimeout bounds a whole request, body included. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithInsecureTLS toggles certificate verification. Listing sites are
// fetched with verification off unless this is set to false.
func WithInsecureTLS(insecure bool) Option {
	return func(c *Client) {
		c.transport.TLSClientConfig.InsecureSkipVerify = insecure
	}
}

// WithMaxBody caps how many bytes of a response body are read.
func WithMaxBody(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithLogger sets where truncated bodies are reported.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithRoundTripper replaces the pooled transport, for proxies and tests.
// WithInsecureTLS has no effect once it is set.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.client.Transport = rt
		}
	}
}

// NewClient creates a client with a pooled transport.
func NewClient(opts ...Option) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	c := &Client{
		client:    &http.Client{Transport: transport},
		transport: transport,
		userAgent: DefaultUserAgent,
		maxBody:   defaultMaxBody,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads url and returns its body as UTF-8 text. Any status other
// than 200 yields a *domain.TransportError. Bytes that cannot be decoded are
// replaced rather than failing the page.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &domain.TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &domain.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return "", &domain.TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	capped := &cappedReader{r: resp.Body, n: c.maxBody}
	body, err := decode(capped, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &domain.TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if capped.truncated {
		c.log.Warn().Str("url", url).Int64("limit", c.maxBody).Msg("response body truncated")
	}
	return body, nil
}

// CloseIdleConnections releases pooled connections once a run is over.
func (c *Client) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}

// decode converts r to UTF-8 using the declared or sniffed charset.
func decode(r io.Reader, contentType string) (string, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if errors.Is(err, io.EOF) {
		// Empty body.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	b, err := io.ReadAll(transform.NewReader(utf8Reader, runes.ReplaceIllFormed()))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(b), nil
}

// cappedReader reads at most n bytes and records whether r had more.
type cappedReader struct {
	r         io.Reader
	n         int64
	truncated bool
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.n <= 0 {
		var one [1]byte
		if k, _ := io.ReadFull(c.r, one[:]); k > 0 {
			c.truncated = true
		}
		return 0, io.EOF
	}
	if int64(len(p)) > c.n {
		p = p[:c.n]
	}
	k, err := c.r.Read(p)
	c.n -= int64(k)
	return k, err
}
