package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"trendspull/internal/adapters/trends"
	"trendspull/internal/core/timeframe"
	ptime "trendspull/internal/platform/time"
	"trendspull/internal/services/trends/domain"
	trendsmod "trendspull/internal/services/trends/module"
	"trendspull/internal/services/trends/service"
)

// environment carries what run needs from the process so tests can fake it
type environment struct {
	opts        trendsmod.Options
	newFetcher  func(trends.Options) (service.Fetcher, error)
	openArchive func(context.Context) (service.Archive, func(), error)
}

type flags struct {
	req         timeframe.Request
	keywords    string
	hl          string
	geo         string
	gprop       string
	cat         int
	resolveOnly bool
	archive     bool
}

func parseFlags(args []string, out io.Writer) (flags, error) {
	var (
		f    flags
		mode string
	)
	fs := flag.NewFlagSet("trendspull", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&mode, "mode", "relative", "all | whole | relative | explicit (or 0-3)")
	fs.StringVar(&f.req.Unit, "unit", "months", "years | months for whole; days | weeks | months | years for relative")
	fs.IntVar(&f.req.Year, "year", 0, "calendar year for -mode whole")
	fs.IntVar(&f.req.Month, "month", 0, "month 1-12 for -mode whole -unit months")
	fs.IntVar(&f.req.Count, "count", 1, "units ago for -mode relative")
	fs.StringVar(&f.req.From, "from", "", "YYYY-MM-DD for -mode explicit")
	fs.StringVar(&f.req.To, "to", "", "YYYY-MM-DD for -mode explicit")
	fs.StringVar(&f.keywords, "kw", "", "comma separated keywords, 1 to 5")
	fs.StringVar(&f.hl, "hl", "", "host language, e.g. zh-TW")
	fs.StringVar(&f.geo, "geo", "", "two letter geo, e.g. TW")
	fs.StringVar(&f.gprop, "gprop", "", "images | news | youtube | froogle; empty for web search")
	fs.IntVar(&f.cat, "cat", 0, "category id, 0 for all")
	fs.BoolVar(&f.resolveOnly, "resolve-only", false, "print the timeframe and exit without fetching")
	fs.BoolVar(&f.archive, "archive", false, "record the run in the configured stores")

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	m, err := timeframe.ParseMode(mode)
	if err != nil {
		return f, err
	}
	f.req.Mode = m
	return f, nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func run(ctx context.Context, args []string, out io.Writer, env environment) error {
	f, err := parseFlags(args, out)
	if err != nil {
		return err
	}

	o := env.opts
	if f.hl != "" {
		o.Client.HostLanguage = f.hl
	}
	fetch, err := env.newFetcher(o.Client)
	if err != nil {
		return err
	}

	svcOpts := []service.Option{service.WithDefaults(o.Defaults)}
	if f.archive && env.openArchive != nil {
		a, closeArchive, err := env.openArchive(ctx)
		if err != nil {
			return err
		}
		defer closeArchive()
		if a != nil {
			svcOpts = append(svcOpts, service.WithArchive(a))
		}
	}
	svc := service.New(fetch, svcOpts...)

	if f.resolveOnly {
		tf, err := svc.Timeframe(ctx, f.req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "timeframe: %s\n", tf.Timeframe)
		return nil
	}

	t, err := svc.Interest(ctx, domain.InterestInput{
		Range: f.req,
		Query: domain.Query{
			Keywords:     splitKeywords(f.keywords),
			Category:     f.cat,
			Geo:          f.geo,
			Property:     f.gprop,
			HostLanguage: f.hl,
		},
	})
	if err != nil {
		return err
	}
	if t == nil {
		fmt.Fprintln(out, "no data")
		return nil
	}
	// the window printed is the one the table was fetched for
	fmt.Fprintf(out, "timeframe: %s\n", t.Timeframe)
	return writeTable(out, t)
}

// writeTable prints one aligned row per date with a column per keyword
func writeTable(out io.Writer, t *domain.Table) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "date\t%s\tisPartial\n", strings.Join(t.Keywords, "\t"))
	for _, r := range t.Rows {
		cells := make([]string, 0, len(r.Values))
		for _, v := range r.Values {
			cells = append(cells, strconv.Itoa(v))
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\n", ptime.FormatDate(r.Date), strings.Join(cells, "\t"), r.IsPartial)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.RunID != "" {
		fmt.Fprintf(out, "run: %s\n", t.RunID)
	}
	return nil
}
