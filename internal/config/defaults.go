package config

const (
	defaultSaveDir     = "~/.local/share/vigil/screenshots"
	defaultLogDir      = "~/.local/share/vigil/logs"
	defaultIntervalMin = 30
	defaultIntervalMax = 600
	defaultPixelSize   = 7
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Capture: Capture{
			SaveDir:     defaultSaveDir,
			IntervalMin: defaultIntervalMin,
			IntervalMax: defaultIntervalMax,
			PixelSize:   defaultPixelSize,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Capture:        false,
			Classification: true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
