package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/council/internal/domain/config"
)

// LoadCouncilFile loads and parses council.toml. A missing file yields an
// empty config so that `council init` can run before the file exists.
func LoadCouncilFile(projectRoot string) (*config.CouncilFileConfig, error) {
	path := filepath.Join(projectRoot, CouncilFileName)

	var cfg config.CouncilFileConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", CouncilFileName, err)
	}

	cfg.Council.Founder = os.ExpandEnv(cfg.Council.Founder)
	cfg.Storage.Path = os.ExpandEnv(cfg.Storage.Path)

	return &cfg, nil
}

// WriteCouncilFile writes council.toml, refusing to overwrite an existing file
func WriteCouncilFile(projectRoot string, cfg *config.CouncilFileConfig) (string, error) {
	path := filepath.Join(projectRoot, CouncilFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", CouncilFileName, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", CouncilFileName, err)
	}
	return path, nil
}

// loadEnvFiles loads .env files for variable expansion in council.toml
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}
