package module

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trendspull/internal/adapters/trends"
	"trendspull/internal/modkit"
	"trendspull/internal/platform/config"
	phttp "trendspull/internal/platform/net/http"
	"trendspull/internal/platform/store"
	"trendspull/internal/services/trends/domain"
	"trendspull/internal/services/trends/service"

	"github.com/go-chi/chi/v5"
)

type fakeFetcher struct{ got trends.Payload }

func (f *fakeFetcher) InterestOverTime(_ context.Context, p trends.Payload) (trends.Timeline, error) {
	f.got = p
	return trends.Timeline{Points: []trends.Point{{Time: "1693699200", Value: make([]int, len(p.Keywords))}}}, nil
}

type fakeCH struct {
	ddl    []string
	tables []string
	err    error
}

func (f *fakeCH) Insert(_ context.Context, table string, _ [][]any) error {
	f.tables = append(f.tables, table)
	return nil
}
func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.ddl = append(f.ddl, sql)
	return f.err
}
func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                           { return nil }

func opts() Options {
	return Options{
		Defaults:      service.Defaults{Geo: "JP", HostLanguage: "ja"},
		Archive:       true,
		SchemaTimeout: time.Second,
	}
}

func TestNew_DefaultsAndRoutes(t *testing.T) {
	f := &fakeFetcher{}
	m := newWith(modkit.Deps{}, opts(), f)

	if m.Name() != "trends" || m.Prefix() != "/trends" {
		t.Fatalf("name/prefix = %q %q", m.Name(), m.Prefix())
	}
	if m.Archived() {
		t.Fatalf("archived without any store")
	}
	if _, ok := m.Ports().(domain.ServicePort); !ok {
		t.Fatalf("ports do not implement the service port")
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	req := httptest.NewRequest(stdhttp.MethodPost, "/trends/interest", strings.NewReader(`{"keywords":["ramen"],"range":{"mode":"all"}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if f.got.Geo != "JP" || f.got.HostLanguage != "ja" || f.got.Timeframe != "all" {
		t.Fatalf("defaults not applied: %+v", f.got)
	}

	// no archive means runs are unavailable
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/trends/runs", nil))
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("runs status = %d", rec.Code)
	}
}

func TestNew_ArchivesToClickhouse(t *testing.T) {
	ch := &fakeCH{}
	m := newWith(modkit.Deps{CH: ch}, opts(), &fakeFetcher{})
	if !m.Archived() || len(ch.ddl) == 0 {
		t.Fatalf("archive not wired: archived=%v ddl=%d", m.Archived(), len(ch.ddl))
	}

	port := m.Ports().(domain.ServicePort)
	tb, err := port.Interest(context.Background(), domain.InterestInput{Query: domain.Query{Keywords: []string{"ramen"}}})
	if err != nil || tb == nil || tb.RunID == "" {
		t.Fatalf("Interest = %+v, %v", tb, err)
	}
	if len(ch.tables) != 1 || ch.tables[0] != "trend_points" {
		t.Fatalf("inserted into %v", ch.tables)
	}
}

func TestNew_SchemaFailureDisablesArchive(t *testing.T) {
	m := newWith(modkit.Deps{CH: &fakeCH{err: errors.New("readonly")}}, opts(), &fakeFetcher{})
	if m.Archived() {
		t.Fatalf("archive kept despite schema failure")
	}
}

func TestNew_ArchiveSwitchedOff(t *testing.T) {
	o := opts()
	o.Archive = false
	ch := &fakeCH{}
	m := newWith(modkit.Deps{CH: ch}, o, &fakeFetcher{})
	if m.Archived() || len(ch.ddl) != 0 {
		t.Fatalf("archive wired while switched off")
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_TRENDS_HL", "en-US")
	t.Setenv("CORE_TRENDS_GEO", "US")
	t.Setenv("CORE_TRENDS_TZ", "-120")
	t.Setenv("CORE_TRENDS_ARCHIVE", "false")

	o := FromConfig(config.New())
	if o.Client.HostLanguage != "en-US" || o.Defaults.HostLanguage != "en-US" {
		t.Fatalf("hl = %+v", o)
	}
	if o.Defaults.Geo != "US" || o.Client.TZ != -120 || o.Archive {
		t.Fatalf("options = %+v", o)
	}
	if o.Client.Timeout != 15*time.Second {
		t.Fatalf("timeout = %v", o.Client.Timeout)
	}
}
