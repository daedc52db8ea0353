package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// OutputFormat selects how query results are rendered
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates an output format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputTable, nil
	case OutputTable, OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// StorageBackend selects the journal implementation
type StorageBackend string

const (
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
	StorageBadger StorageBackend = "badger"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Council file (council.toml)
	Council *CouncilFileConfig

	// Caller identity, already authenticated by whoever invokes the CLI
	Caller    common.Address
	HasCaller bool

	// At overrides the ambient clock when set
	At *time.Time

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         OutputFormat
	LogLevel       string
	Timeout        time.Duration
	DefaultTTL     time.Duration

	// Journal storage
	Storage StorageConfig

	// MetricsFile receives notification counters in Prometheus text format
	// when set
	MetricsFile string
}

// StorageConfig is the resolved journal location
type StorageConfig struct {
	Backend StorageBackend
	Path    string
}
