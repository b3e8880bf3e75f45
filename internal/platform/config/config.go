// Package config reads settings from environment variables under a prefix
// e.g. config.New().Prefix("CORE_TRENDS_").MayString("GEO", "TW") reads CORE_TRENDS_GEO
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"trendspull/internal/platform/logger"
)

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a view with p appended to the prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// MayString returns the trimmed value, def when unset or blank
func (c Conf) MayString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.Key(key))); v != "" {
		return v
	}
	return def
}

// MayInt parses an int, def when unset; a bad value logs a warning and yields def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool parses a bool per strconv.ParseBool
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration parses a duration like 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.MayString(key, "")
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Named("config").Warn().
			Str("key", c.Key(key)).
			Str("value", s).
			Interface("default", def).
			Msg("unparseable setting, using default")
		return def
	}
	return v
}
