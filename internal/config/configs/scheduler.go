package configs

import "time"

// Scheduler configures the periodic materialiser tick. Enabled controls
// whether the in-process ticker runs at all; deployments that trigger
// materialisation through the HTTP endpoint (e.g. an external cron) can
// disable it.
type Scheduler struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Interval time.Duration `env:"INTERVAL" envDefault:"15m"`
	// WindowDays is how far ahead the materialiser creates content rows.
	WindowDays int `env:"WINDOW_DAYS" envDefault:"7"`
}
