// Package service contains trends workflows
package service

import (
	"context"
	"sort"
	"strings"

	"trendspull/internal/adapters/trends"
	"trendspull/internal/core/normalize"
	"trendspull/internal/core/timeframe"
	perr "trendspull/internal/platform/errors"
	"trendspull/internal/platform/logger"
	"trendspull/internal/platform/net/http/bind"
	ptime "trendspull/internal/platform/time"
	"trendspull/internal/services/trends/domain"
)

// Service defines the trends service contract
type Service interface {
	domain.ServicePort
}

// Fetcher is the slice of the trends client the service needs
type Fetcher interface {
	InterestOverTime(ctx context.Context, p trends.Payload) (trends.Timeline, error)
}

// Archive records fetched tables; it is never read to answer Interest
type Archive interface {
	Record(ctx context.Context, q domain.Query, t *domain.Table) (string, error)
	Runs(ctx context.Context, limit int) ([]domain.Run, error)
}

// Defaults fill empty query fields
type Defaults struct {
	Geo          string
	HostLanguage string
}

// Svc implements the trends service
type Svc struct {
	fetch    Fetcher
	resolver *timeframe.Resolver
	archive  Archive
	defaults Defaults
	log      logger.Logger
}

// Option configures Svc
type Option func(*Svc)

// WithResolver swaps the timeframe resolver, mainly to pin the clock
func WithResolver(r *timeframe.Resolver) Option { return func(s *Svc) { s.resolver = r } }

// WithArchive records every non-empty table
func WithArchive(a Archive) Option { return func(s *Svc) { s.archive = a } }

// WithDefaults sets geo and hl used when a query leaves them empty
func WithDefaults(d Defaults) Option { return func(s *Svc) { s.defaults = d } }

// WithLogger sets the service logger
func WithLogger(l logger.Logger) Option { return func(s *Svc) { s.log = l } }

// New constructs a trends service
func New(fetch Fetcher, opts ...Option) *Svc {
	if fetch == nil {
		panic("trends.Service requires a non nil Fetcher")
	}
	s := &Svc{
		fetch:    fetch,
		defaults: Defaults{Geo: "TW", HostLanguage: "zh-TW"},
		log:      *logger.Named("trends"),
	}
	for _, o := range opts {
		o(s)
	}
	if s.resolver == nil {
		s.resolver = timeframe.New()
	}
	return s
}

// Timeframe resolves a window without touching the network
func (s *Svc) Timeframe(_ context.Context, in timeframe.Request) (domain.TimeframeOutput, error) {
	r, err := s.resolver.ResolveRequest(in)
	if err != nil {
		return domain.TimeframeOutput{}, err
	}
	return domain.TimeframeOutput{Mode: in.Mode.String(), Timeframe: r.String(), Days: r.Days()}, nil
}

// Interest fetches interest over time and reshapes it to a dated table
// a nil table with a nil error means the query matched no data
func (s *Svc) Interest(ctx context.Context, in domain.InterestInput) (*domain.Table, error) {
	q, err := s.normalize(in.Query)
	if err != nil {
		return nil, err
	}
	r, err := s.resolver.ResolveRequest(in.Range)
	if err != nil {
		return nil, err
	}

	p := trends.Payload{
		Keywords:     q.Keywords,
		Category:     q.Category,
		Timeframe:    r.String(),
		Geo:          q.Geo,
		Property:     q.Property,
		HostLanguage: q.HostLanguage,
	}
	tl, err := s.fetch.InterestOverTime(ctx, p)
	if err != nil {
		return nil, err
	}
	if tl.Empty() {
		s.log.Info().
			Strs("keywords", q.Keywords).
			Str("timeframe", p.Timeframe).
			Str("geo", q.Geo).
			Msg("trends returned no data")
		return nil, nil
	}

	t, err := Reshape(q.Keywords, tl.Points)
	if err != nil {
		return nil, err
	}
	t.Timeframe = p.Timeframe
	t.Geo = q.Geo

	if s.archive != nil {
		id, aerr := s.archive.Record(ctx, q, t)
		if aerr != nil {
			s.log.Error().Err(aerr).Strs("keywords", q.Keywords).Msg("trends archive failed")
		} else {
			t.RunID = id
			logger.C(logger.WithRun(ctx, id)).Debug().Int("rows", len(t.Rows)).Msg("trends run archived")
		}
	}
	return t, nil
}

// Runs lists archived fetches, newest first
func (s *Svc) Runs(ctx context.Context, in domain.RunsInput) ([]domain.Run, error) {
	if s.archive == nil {
		return nil, perr.Unavailablef("trends archive is not configured")
	}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit == 0 {
		limit = 20
	}
	return s.archive.Runs(ctx, limit)
}

// normalize validates q, fills defaults, and folds keywords without duplicates
func (s *Svc) normalize(q domain.Query) (domain.Query, error) {
	if err := bind.Struct(q); err != nil {
		return q, err
	}
	q.Keywords = normalize.Keywords(q.Keywords)
	if len(q.Keywords) == 0 {
		return q, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "keywords must not be blank"), "keywords")
	}
	q.Geo = strings.ToUpper(strings.TrimSpace(q.Geo))
	if q.Geo == "" {
		q.Geo = s.defaults.Geo
	}
	if q.HostLanguage == "" {
		q.HostLanguage = s.defaults.HostLanguage
	}
	return q, nil
}

// Reshape turns timeline points into rows keyed by date, ascending
// every point must carry one value per keyword
func Reshape(keywords []string, pts []trends.Point) (*domain.Table, error) {
	rows := make([]domain.Row, 0, len(pts))
	for i, p := range pts {
		at, err := p.At()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "trends point %d has bad time %q", i, p.Time)
		}
		if len(p.Value) != len(keywords) {
			return nil, perr.JSONErrf("trends point %d has %d values for %d keywords", i, len(p.Value), len(keywords))
		}
		rows = append(rows, domain.Row{
			Date:      ptime.Day(at),
			Values:    append([]int(nil), p.Value...),
			IsPartial: p.IsPartial,
		})
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Date.Before(rows[b].Date) })
	return &domain.Table{Keywords: append([]string(nil), keywords...), Rows: rows}, nil
}
