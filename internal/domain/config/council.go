package config

// CouncilFileConfig is the raw council.toml structure
type CouncilFileConfig struct {
	Council CouncilSection `toml:"council"`
	Storage StorageSection `toml:"storage"`
	Log     LogSection     `toml:"log"`
	Metrics MetricsSection `toml:"metrics"`
}

// CouncilSection holds the genesis parameters and proposal defaults
type CouncilSection struct {
	Name       string `toml:"name"`
	Founder    string `toml:"founder"`
	DefaultTTL string `toml:"default_ttl"`
}

// StorageSection selects the journal backend. Path is relative to the data dir.
type StorageSection struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path,omitempty"`
}

type LogSection struct {
	Level string `toml:"level,omitempty"`
}

// MetricsSection names a Prometheus textfile that notification counters are
// written to after every command
type MetricsSection struct {
	Textfile string `toml:"textfile,omitempty"`
}
