package trends

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	perr "trendspull/internal/platform/errors"
)

const (
	pathExplorePage = "/trends/explore/"
	pathExplore     = "/trends/api/explore"
	pathMultiline   = "/trends/api/widgetdata/multiline"

	exploreGuardLen   = 4
	multilineGuardLen = 5

	widgetTimeseries = "TIMESERIES"
)

// Bootstrap loads the explore page once so the jar holds the NID cookie
// later calls on the same client skip the request
func (c *Client) Bootstrap(ctx context.Context) error {
	if c.booted.Load() {
		return nil
	}
	hl := c.opts.HostLanguage
	geo := hl
	if len(hl) >= 2 {
		geo = hl[len(hl)-2:]
	}
	resp, err := c.Do(ctx, http.MethodGet, pathExplorePage, url.Values{"geo": {geo}})
	if err != nil {
		return perr.WithOp(err, "trends.bootstrap")
	}
	if err := drainAndClose(resp.Body); err != nil {
		c.log.Debug().Err(err).Msg("trends bootstrap close")
	}
	c.booted.Store(true)
	return nil
}

// Explore registers the payload and returns its widgets
func (c *Client) Explore(ctx context.Context, p Payload) ([]Widget, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}
	items := make([]comparisonItem, 0, len(p.Keywords))
	for _, kw := range p.Keywords {
		items = append(items, comparisonItem{Keyword: kw, Time: p.Timeframe, Geo: p.Geo})
	}
	req, err := json.Marshal(exploreReq{ComparisonItem: items, Category: p.Category, Property: p.Property})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "trends explore encode")
	}

	q := url.Values{}
	q.Set("hl", c.hl(p))
	q.Set("tz", strconv.Itoa(c.opts.TZ))
	q.Set("req", string(req))

	body, err := c.read(ctx, http.MethodPost, pathExplore, q)
	if err != nil {
		return nil, perr.WithOp(err, "trends.explore")
	}
	b, ok := trimGuard(body, exploreGuardLen)
	if !ok {
		return nil, perr.JSONErrf("trends explore body too short (%d bytes)", len(body))
	}
	var out exploreResp
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "trends explore decode")
	}
	return out.Widgets, nil
}

// Multiline fetches the time series behind a TIMESERIES widget
func (c *Client) Multiline(ctx context.Context, w Widget, hl string) ([]Point, error) {
	if w.Token == "" || len(w.Request) == 0 {
		return nil, perr.InvalidArgf("trends widget %q has no token or request", w.ID)
	}
	if hl == "" {
		hl = c.opts.HostLanguage
	}
	q := url.Values{}
	q.Set("req", string(w.Request))
	q.Set("token", w.Token)
	q.Set("tz", strconv.Itoa(c.opts.TZ))
	q.Set("hl", hl)

	body, err := c.read(ctx, http.MethodGet, pathMultiline, q)
	if err != nil {
		return nil, perr.WithOp(err, "trends.multiline")
	}
	b, ok := trimGuard(body, multilineGuardLen)
	if !ok {
		return nil, perr.JSONErrf("trends multiline body too short (%d bytes)", len(body))
	}
	var out multilineResp
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "trends multiline decode")
	}
	return out.Default.TimelineData, nil
}

// InterestOverTime runs bootstrap, explore and multiline for one payload
// an empty Timeline means the service had no data for the query
func (c *Client) InterestOverTime(ctx context.Context, p Payload) (Timeline, error) {
	if err := c.Bootstrap(ctx); err != nil {
		return Timeline{}, err
	}
	widgets, err := c.Explore(ctx, p)
	if err != nil {
		return Timeline{}, err
	}
	var ts *Widget
	for i := range widgets {
		if widgets[i].ID == widgetTimeseries {
			ts = &widgets[i]
			break
		}
	}
	if ts == nil {
		return Timeline{}, perr.NotFoundf("trends explore returned no %s widget", widgetTimeseries)
	}
	pts, err := c.Multiline(ctx, *ts, c.hl(p))
	if err != nil {
		return Timeline{}, err
	}
	return Timeline{Keywords: append([]string(nil), p.Keywords...), Points: pts}, nil
}

func (c *Client) hl(p Payload) string {
	if p.HostLanguage != "" {
		return p.HostLanguage
	}
	return c.opts.HostLanguage
}

func (c *Client) read(ctx context.Context, method, path string, q url.Values) ([]byte, error) {
	resp, err := c.Do(ctx, method, path, q)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("error closing response body")
		}
	}()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "trends read body")
	}
	return b, nil
}

func validatePayload(p Payload) error {
	n := len(p.Keywords)
	if n == 0 || n > MaxKeywords {
		return perr.WithField(perr.InvalidArgf("trends accepts 1 to %d keywords, got %d", MaxKeywords, n), "keywords")
	}
	for i, kw := range p.Keywords {
		if strings.TrimSpace(kw) == "" {
			return perr.WithField(perr.InvalidArgf("keyword %d is empty", i), "keywords")
		}
	}
	if p.Category < 0 {
		return perr.WithField(perr.InvalidArgf("category must be >= 0"), "cat")
	}
	if p.Timeframe == "" {
		return perr.WithField(perr.InvalidArgf("timeframe is required"), "timeframe")
	}
	for _, g := range Properties {
		if p.Property == g {
			return nil
		}
	}
	return perr.WithField(perr.InvalidArgf("unknown property %q", p.Property), "gprop")
}
