// Package trends provides a minimal client for the Google Trends web endpoints
// used to fetch interest over time for up to five keywords
package trends

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	perr "trendspull/internal/platform/errors"
	"trendspull/internal/platform/logger"
)

const (
	baseURLDefault  = "https://trends.google.com"
	defaultTimeout  = 15 * time.Second
	defaultUA       = "trendspull"
	defaultHL       = "zh-TW"
	defaultTZ       = 360
	maxBodyBytes    = 8 << 20
	errorSnippetLen = 2048
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// HostLanguage is the hl parameter, e.g. zh-TW or en-US
	// the last two letters also pick the geo of the cookie bootstrap request
	HostLanguage string

	// TZ is the timezone offset in minutes sent as tz
	TZ int

	// Proxy is an optional http(s) proxy URL
	Proxy string
}

// Client is a single attempt Google Trends client with a cookie jar
// it performs no retries; callers decide what to do with rate limits
type Client struct {
	http   *http.Client
	opts   Options
	log    logger.Logger
	now    func() time.Time
	booted atomic.Bool
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) (*Client, error) {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.HostLanguage == "" {
		o.HostLanguage = defaultHL
	}
	if o.TZ == 0 {
		o.TZ = defaultTZ
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "trends cookie jar")
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if p := strings.TrimSpace(o.Proxy); p != "" {
		pu, err := url.Parse(p)
		if err != nil || pu.Host == "" {
			return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "trends proxy %q is not a URL", p)
		}
		tr.Proxy = http.ProxyURL(pu)
	}

	return &Client{
		http: &http.Client{Timeout: o.Timeout, Jar: jar, Transport: tr},
		opts: o,
		log:  *logger.Named("trends"),
		now:  time.Now,
	}, nil
}

// HostLanguage returns the configured hl
func (c *Client) HostLanguage() string { return c.opts.HostLanguage }

// Do issues one request and maps the status to a project error
// the caller owns the body of a successful response
func (c *Client) Do(ctx context.Context, method, path string, q url.Values) (*http.Response, error) {
	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "trends new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", c.opts.HostLanguage)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "trends request canceled")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "trends do failed")
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("trends http response")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		_ = drainAndClose(resp.Body)
		return nil, perr.Wrapf(&StatusError{Status: resp.StatusCode}, perr.ErrorCodeTooManyRequests, "trends rate limited")
	case resp.StatusCode >= 500:
		_ = drainAndClose(resp.Body)
		return nil, perr.Wrapf(&StatusError{Status: resp.StatusCode}, perr.ErrorCodeUnavailable, "trends server error %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetLen))
		_ = resp.Body.Close()
		return nil, perr.Wrapf(&StatusError{Status: resp.StatusCode, Body: string(body)}, perr.ErrorCodeUnknown,
			"trends unexpected status %d", resp.StatusCode)
	}
}
