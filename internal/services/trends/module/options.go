package module

import (
	"time"

	"trendspull/internal/adapters/trends"
	"trendspull/internal/platform/config"
	"trendspull/internal/services/trends/service"
)

// Options holds configuration settings for the trends module
type Options struct {
	Client   trends.Options
	Defaults service.Defaults

	// Archive turns run recording on when a store is configured
	Archive       bool
	SchemaTimeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("CORE_TRENDS_")
	hl := tf.MayString("HL", "zh-TW")
	return Options{
		Client: trends.Options{
			BaseURL:      tf.MayString("BASE_URL", ""),
			UserAgent:    tf.MayString("USER_AGENT", ""),
			Timeout:      tf.MayDuration("TIMEOUT", 15*time.Second),
			HostLanguage: hl,
			TZ:           tf.MayInt("TZ", 360),
			Proxy:        tf.MayString("PROXY", ""),
		},
		Defaults: service.Defaults{
			Geo:          tf.MayString("GEO", "TW"),
			HostLanguage: hl,
		},
		Archive:       tf.MayBool("ARCHIVE", true),
		SchemaTimeout: tf.MayDuration("SCHEMA_TIMEOUT", 10*time.Second),
	}
}
