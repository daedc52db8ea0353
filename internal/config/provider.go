package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/council/internal/domain/config"
)

const (
	// CouncilFileName marks the project root
	CouncilFileName = "council.toml"
	// DataDirName holds the journal and local config
	DataDirName = ".council"

	defaultTTL = 72 * time.Hour
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	councilFile, err := LoadCouncilFile(projectRoot)
	if err != nil {
		return nil, err
	}

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = filepath.Join(projectRoot, DataDirName)
	}

	output, err := config.ParseOutputFormat(v.GetString("output"))
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        dataDir,
		Council:        councilFile,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         output,
		LogLevel:       firstNonEmpty(v.GetString("log_level"), councilFile.Log.Level),
		Timeout:        v.GetDuration("timeout"),
		DefaultTTL:     defaultTTL,
	}

	if ttl := firstNonEmpty(v.GetString("default_ttl"), councilFile.Council.DefaultTTL); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid default_ttl %q: %w", ttl, err)
		}
		cfg.DefaultTTL = d
	}

	if caller := strings.TrimSpace(v.GetString("caller")); caller != "" {
		if !common.IsHexAddress(caller) {
			return nil, fmt.Errorf("caller %q is not a valid address", caller)
		}
		cfg.Caller = common.HexToAddress(caller)
		cfg.HasCaller = true
	}

	if at := strings.TrimSpace(v.GetString("at")); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("invalid --at time %q: %w", at, err)
		}
		t = t.UTC()
		cfg.At = &t
	}

	storage, err := resolveStorage(v, councilFile, dataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage = storage

	if metrics := firstNonEmpty(v.GetString("metrics_file"), councilFile.Metrics.Textfile); metrics != "" {
		metrics = os.ExpandEnv(metrics)
		if !filepath.IsAbs(metrics) {
			metrics = filepath.Join(projectRoot, metrics)
		}
		cfg.MetricsFile = metrics
	}

	return cfg, nil
}

func resolveStorage(v *viper.Viper, file *config.CouncilFileConfig, dataDir string) (config.StorageConfig, error) {
	backend := config.StorageBackend(strings.ToLower(firstNonEmpty(v.GetString("storage.backend"), file.Storage.Backend, string(config.StorageFile))))

	var defaultPath string
	switch backend {
	case config.StorageFile:
		defaultPath = "journal.jsonl"
	case config.StorageSQLite:
		defaultPath = "journal.db"
	case config.StorageBadger:
		defaultPath = "journal.badger"
	default:
		return config.StorageConfig{}, fmt.Errorf("unknown storage backend %q (want file, sqlite or badger)", backend)
	}

	path := firstNonEmpty(v.GetString("storage.path"), file.Storage.Path, defaultPath)
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	return config.StorageConfig{Backend: backend, Path: path}, nil
}

// FindProjectRoot walks up from current directory to find council.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, CouncilFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a council project (%s not found)", CouncilFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Local, uncommitted settings such as the caller identity
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix("COUNCIL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", "1m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("output", string(config.OutputTable))
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// flagKey maps a flag name onto its viper key
func flagKey(name string) string {
	if name == "as" {
		return "caller"
	}
	return strings.ReplaceAll(name, "-", "_")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
