package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	kit "trendspull/internal/platform/testkit"
)

func jsonLogger(buf *bytes.Buffer, level string) Logger {
	return build(Options{Level: level, Format: "json", Writer: buf, Service: "trendspull-api"})
}

func TestBuild_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "WARN")
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "dropped") {
		t.Fatalf("info logged at warn: %s", out)
	}
	var line map[string]any
	if err := json.Unmarshal([]byte(out), &line); err != nil {
		t.Fatalf("not json: %q", out)
	}
	if line["service"] != "trendspull-api" || line["message"] != "kept" || line["time"] == nil {
		t.Fatalf("line = %v", line)
	}
}

func TestBuild_UnknownLevelIsDebug(t *testing.T) {
	for _, lvl := range []string{"", "loud", "warning"} {
		var buf bytes.Buffer
		l := jsonLogger(&buf, lvl)
		l.Debug().Msg("d")
		l.Trace().Msg("t")
		kit.MustContain(t, buf.String(), `"message":"d"`)
		if strings.Contains(buf.String(), `"message":"t"`) {
			t.Fatalf("%q: trace leaked", lvl)
		}
	}
}

func TestBuild_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "console", Writer: &buf, Component: "cli"})
	l.Info().Str("timeframe", "today 3-m").Msg("resolved")
	out := buf.String()
	kit.MustContain(t, out, "resolved")
	kit.MustContain(t, out, "timeframe=")
	kit.MustContain(t, out, "component=")
}

func TestEnrich_CarriesIDs(t *testing.T) {
	var buf bytes.Buffer
	base := jsonLogger(&buf, "info")

	ctx := WithRun(WithRequest(context.Background(), "req-123"), "run-abc")
	enrich(&base, ctx).Info().Msg("fetched")
	kit.MustContain(t, buf.String(), `"request_id":"req-123"`)
	kit.MustContain(t, buf.String(), `"run_id":"run-abc"`)

	buf.Reset()
	enrich(&base, context.Background()).Info().Msg("bare")
	if strings.Contains(buf.String(), "request_id") || strings.Contains(buf.String(), "run_id") {
		t.Fatalf("unexpected ids: %s", buf.String())
	}
}

func TestWithRequestAndRun_EmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx || WithRun(ctx, "") != ctx {
		t.Fatal("empty ids must leave ctx untouched")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "trendspull")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "trendspull" || !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("opt = %+v", opt)
	}
}

func TestNamedAndC_UseRoot(t *testing.T) {
	if Named("") != Get() {
		t.Fatal("Named(\"\") should be the root")
	}
	if Named("trends") == nil || C(context.Background()) == nil {
		t.Fatal("nil child logger")
	}
}
