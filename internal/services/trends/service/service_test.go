package service

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"trendspull/internal/adapters/trends"
	"trendspull/internal/core/timeframe"
	perr "trendspull/internal/platform/errors"
	kit "trendspull/internal/platform/testkit"
	"trendspull/internal/services/trends/domain"

	"github.com/rs/zerolog"
)

var sep15 = time.Date(2023, 9, 15, 14, 30, 0, 0, time.UTC)

type fakeFetcher struct {
	got   trends.Payload
	calls int
	tl    trends.Timeline
	err   error
}

func (f *fakeFetcher) InterestOverTime(_ context.Context, p trends.Payload) (trends.Timeline, error) {
	f.calls++
	f.got = p
	return f.tl, f.err
}

type fakeArchive struct {
	recorded *domain.Table
	q        domain.Query
	err      error
	runs     []domain.Run
	limit    int
}

func (a *fakeArchive) Record(_ context.Context, q domain.Query, t *domain.Table) (string, error) {
	a.q, a.recorded = q, t
	if a.err != nil {
		return "", a.err
	}
	return "run-1", nil
}

func (a *fakeArchive) Runs(_ context.Context, limit int) ([]domain.Run, error) {
	a.limit = limit
	return a.runs, nil
}

func point(unix int64, partial bool, vals ...int) trends.Point {
	return trends.Point{Time: strconv.FormatInt(unix, 10), Value: vals, IsPartial: partial}
}

func newSvc(f Fetcher, opts ...Option) *Svc {
	quiet := zerolog.Nop()
	base := []Option{
		WithResolver(timeframe.New(timeframe.WithClock(func() time.Time { return sep15 }), timeframe.WithLogger(&quiet))),
		WithLogger(quiet),
	}
	return New(f, append(base, opts...)...)
}

func TestNew_RequiresFetcher(t *testing.T) {
	kit.MustPanic(t, func() { New(nil) })
}

func TestTimeframe(t *testing.T) {
	s := newSvc(&fakeFetcher{})
	out, err := s.Timeframe(context.Background(), timeframe.Request{Mode: timeframe.WholeUnit, Unit: "months", Year: 2023, Month: 2})
	if err != nil {
		t.Fatal(err)
	}
	if out.Timeframe != "2023-01-01 2023-02-01" || out.Mode != "whole" || out.Days != 32 {
		t.Fatalf("out = %+v", out)
	}

	out, err = s.Timeframe(context.Background(), timeframe.Request{Mode: timeframe.RelativeToToday, Unit: "days", Count: 7})
	if err != nil || out.Timeframe != "2023-09-08 2023-09-15" {
		t.Fatalf("relative = %+v, %v", out, err)
	}

	if _, err := s.Timeframe(context.Background(), timeframe.Request{Mode: 9}); !errors.Is(err, timeframe.ErrInvalidMode) {
		t.Fatalf("err = %v", err)
	}
}

func TestInterest_Reshapes(t *testing.T) {
	f := &fakeFetcher{tl: trends.Timeline{Points: []trends.Point{
		point(1694304000, true, 55, 0),   // 2023-09-10
		point(1693699200, false, 40, 12), // 2023-09-03
	}}}
	a := &fakeArchive{}
	s := newSvc(f, WithArchive(a))

	in := domain.InterestInput{
		Range: timeframe.Request{Mode: timeframe.ExplicitRange, From: "2023-09-15", To: "2023-08-28"},
		Query: domain.Query{Keywords: []string{" 貓 ", "ｄｏｇ", "貓"}, Geo: "tw"},
	}
	tb, err := s.Interest(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}

	// fullwidth folds to ascii, duplicates drop, defaults fill
	if len(f.got.Keywords) != 2 || f.got.Keywords[0] != "貓" || f.got.Keywords[1] != "dog" {
		t.Fatalf("payload keywords = %q", f.got.Keywords)
	}
	if f.got.Timeframe != "2023-08-28 2023-09-15" || f.got.Geo != "TW" || f.got.HostLanguage != "zh-TW" {
		t.Fatalf("payload = %+v", f.got)
	}

	if tb.Timeframe != f.got.Timeframe || tb.Geo != "TW" || tb.RunID != "run-1" {
		t.Fatalf("table header = %+v", tb)
	}
	if len(tb.Rows) != 2 || tb.Rows[0].Date.Day() != 3 || tb.Rows[1].Date.Day() != 10 {
		t.Fatalf("rows not sorted by date: %+v", tb.Rows)
	}
	if v, ok := tb.Value(tb.Rows[0], "dog"); !ok || v != 12 {
		t.Fatalf("Value(dog) = %d, %v", v, ok)
	}
	if !tb.Rows[1].IsPartial {
		t.Fatalf("partial flag lost")
	}
	if a.recorded != tb || a.q.Geo != "TW" {
		t.Fatalf("archive not called with the table")
	}
}

func TestInterest_EmptyIsAbsent(t *testing.T) {
	a := &fakeArchive{}
	s := newSvc(&fakeFetcher{}, WithArchive(a))
	tb, err := s.Interest(context.Background(), domain.InterestInput{Query: domain.Query{Keywords: []string{"zzzq"}}})
	if err != nil || tb != nil {
		t.Fatalf("Interest = %+v, %v; want nil, nil", tb, err)
	}
	if a.recorded != nil {
		t.Fatalf("empty results must not be archived")
	}
}

func TestInterest_ArchiveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeFetcher{tl: trends.Timeline{Points: []trends.Point{point(1693699200, false, 1)}}}
	s := newSvc(f, WithArchive(&fakeArchive{err: errors.New("pg down")}))

	kit.Swap(t, &s.log, zerolog.New(&buf))

	tb, err := s.Interest(context.Background(), domain.InterestInput{Query: domain.Query{Keywords: []string{"a"}}})
	if err != nil || tb == nil {
		t.Fatalf("Interest = %v, %v", tb, err)
	}
	if tb.RunID != "" {
		t.Fatalf("run id set despite archive failure")
	}
	kit.MustContain(t, buf.String(), `"level":"error"`)
	kit.MustContain(t, buf.String(), "trends archive failed")
	kit.MustContain(t, buf.String(), "pg down")
}

func TestInterest_Errors(t *testing.T) {
	boom := perr.Newf(perr.ErrorCodeTooManyRequests, "slow down")
	cases := []struct {
		name  string
		f     *fakeFetcher
		in    domain.InterestInput
		code  perr.ErrorCode
		field string
		calls int
	}{
		{"no keywords", &fakeFetcher{}, domain.InterestInput{}, perr.ErrorCodeValidation, "keywords", 0},
		{"six keywords", &fakeFetcher{}, domain.InterestInput{Query: domain.Query{Keywords: []string{"a", "b", "c", "d", "e", "f"}}}, perr.ErrorCodeValidation, "keywords", 0},
		{"blank keyword", &fakeFetcher{}, domain.InterestInput{Query: domain.Query{Keywords: []string{"a", "  "}}}, perr.ErrorCodeValidation, "keywords[1]", 0},
		{"invisible keyword", &fakeFetcher{}, domain.InterestInput{Query: domain.Query{Keywords: []string{"\u200b\u200d"}}}, perr.ErrorCodeValidation, "keywords", 0},
		{"bad gprop", &fakeFetcher{}, domain.InterestInput{Query: domain.Query{Keywords: []string{"a"}, Property: "maps"}}, perr.ErrorCodeValidation, "gprop", 0},
		{"negative cat", &fakeFetcher{}, domain.InterestInput{Query: domain.Query{Keywords: []string{"a"}, Category: -1}}, perr.ErrorCodeValidation, "cat", 0},
		{"bad range", &fakeFetcher{}, domain.InterestInput{
			Range: timeframe.Request{Mode: timeframe.ExplicitRange, From: "2023-02-30", To: "2023-03-01"},
			Query: domain.Query{Keywords: []string{"a"}},
		}, perr.ErrorCodeInvalidArgument, "from", 0},
		{"client error", &fakeFetcher{err: boom}, domain.InterestInput{Query: domain.Query{Keywords: []string{"a"}}}, perr.ErrorCodeTooManyRequests, "", 1},
		{"value count mismatch", &fakeFetcher{tl: trends.Timeline{Points: []trends.Point{point(1693699200, false, 1, 2)}}},
			domain.InterestInput{Query: domain.Query{Keywords: []string{"a"}}}, perr.ErrorCodeJSON, "", 1},
		{"bad point time", &fakeFetcher{tl: trends.Timeline{Points: []trends.Point{{Time: "Sep 3", Value: []int{1}}}}},
			domain.InterestInput{Query: domain.Query{Keywords: []string{"a"}}}, perr.ErrorCodeJSON, "", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newSvc(tc.f).Interest(context.Background(), tc.in)
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("err = %v, want *perr.Error", err)
			}
			if e.Code() != tc.code {
				t.Fatalf("code = %v, want %v (%v)", e.Code(), tc.code, err)
			}
			if tc.field != "" && e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
			if tc.f.calls != tc.calls {
				t.Fatalf("client calls = %d, want %d", tc.f.calls, tc.calls)
			}
		})
	}
}

func TestRuns(t *testing.T) {
	if _, err := newSvc(&fakeFetcher{}).Runs(context.Background(), domain.RunsInput{}); perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("no archive err = %v", err)
	}

	a := &fakeArchive{runs: []domain.Run{{ID: "r1"}}}
	s := newSvc(&fakeFetcher{}, WithArchive(a))
	got, err := s.Runs(context.Background(), domain.RunsInput{})
	if err != nil || len(got) != 1 || a.limit != 20 {
		t.Fatalf("Runs = %v, %v, limit=%d", got, err, a.limit)
	}
	if _, err := s.Runs(context.Background(), domain.RunsInput{Limit: 500}); perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("limit 500 err = %v", err)
	}
}
