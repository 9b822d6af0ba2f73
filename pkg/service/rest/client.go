// Package rest reads option collections from the Testray REST backend.
package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/interfaces"
	"github.com/secmon-lab/filterschema/pkg/utils/safe"
)

// ErrUnexpectedStatus is returned for a non 2xx response
var ErrUnexpectedStatus = goerr.New("unexpected status code")

// maxBodySize bounds a collection response
const maxBodySize = 8 << 20

// client implements interfaces.RESTClient
type client struct {
	baseURL  *url.URL
	http     *http.Client
	user     string
	password string
	token    string
}

var _ interfaces.RESTClient = &client{}

type Option func(*client)

// WithBasicAuth authenticates every request with user and password
func WithBasicAuth(user, password string) Option {
	return func(c *client) {
		c.user = user
		c.password = password
	}
}

// WithToken authenticates every request with a bearer token
func WithToken(token string) Option {
	return func(c *client) {
		c.token = token
	}
}

// WithTimeout sets the timeout of one request
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.http.Timeout = timeout
	}
}

// WithHTTPClient replaces the pooled client, mostly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

// New creates a REST client for the backend at baseURL, e.g.
// https://testray.example.com/o/c
func New(baseURL string, opts ...Option) (interfaces.RESTClient, error) {
	if baseURL == "" {
		return nil, goerr.New("REST base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid REST base URL", goerr.V("baseURL", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("REST base URL must be http or https", goerr.V("baseURL", baseURL))
	}

	c := &client{
		baseURL: u,
		http:    cleanhttp.DefaultPooledClient(),
	}
	c.http.Timeout = 30 * time.Second

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// resolve joins path to the base URL. Resource paths keep filter
// expressions readable, with raw spaces, so bytes that may not appear in a
// URL are escaped. Delimiters and existing escapes are kept as they are:
// context values were escaped when the path was built and must not be
// decoded here.
func (c *client) resolve(path string) string {
	p, rawQuery, _ := strings.Cut(path, "?")

	u := *c.baseURL
	u.Path = u.Path + "/" + strings.TrimLeft(p, "/")
	u.RawQuery = escapeQuery(rawQuery)

	return u.String()
}

func escapeQuery(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '%' && i+2 < len(raw) && isHex(raw[i+1]) && isHex(raw[i+2]):
			b.WriteByte(c)
		case allowedInQuery(c):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func allowedInQuery(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/?", c) >= 0
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Get fetches path, which carries its own query string, below the base URL
func (c *client) Get(ctx context.Context, path string) ([]byte, error) {
	target := c.resolve(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.V("path", path))
	}
	req.Header.Set("Accept", "application/json")
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.user != "":
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request resource", goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("path", path))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(ErrUnexpectedStatus, "resource request failed",
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	return body, nil
}
