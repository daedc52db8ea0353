package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/council/internal/domain/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadCouncilFile(t *testing.T) {
	t.Run("missing file is empty config", func(t *testing.T) {
		cfg, err := LoadCouncilFile(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, cfg.Council.Name)
		assert.Empty(t, cfg.Storage.Backend)
	})

	t.Run("parses sections and expands env", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("COUNCIL_TEST_FOUNDER", "0x1111111111111111111111111111111111111111")
		writeFile(t, filepath.Join(root, CouncilFileName), `
[council]
name = "guild"
founder = "${COUNCIL_TEST_FOUNDER}"
default_ttl = "24h"

[storage]
backend = "sqlite"

[log]
level = "debug"
`)
		cfg, err := LoadCouncilFile(root)
		require.NoError(t, err)
		assert.Equal(t, "guild", cfg.Council.Name)
		assert.Equal(t, "0x1111111111111111111111111111111111111111", cfg.Council.Founder)
		assert.Equal(t, "24h", cfg.Council.DefaultTTL)
		assert.Equal(t, "sqlite", cfg.Storage.Backend)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("invalid toml", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, CouncilFileName), "[council\nname=")
		_, err := LoadCouncilFile(root)
		assert.Error(t, err)
	})
}

func TestWriteCouncilFile(t *testing.T) {
	root := t.TempDir()
	in := &config.CouncilFileConfig{
		Council: config.CouncilSection{Name: "guild", Founder: "0x2222222222222222222222222222222222222222"},
		Storage: config.StorageSection{Backend: "badger"},
	}

	path, err := WriteCouncilFile(root, in)
	require.NoError(t, err)
	assert.FileExists(t, path)

	out, err := LoadCouncilFile(root)
	require.NoError(t, err)
	assert.Equal(t, in.Council, out.Council)
	assert.Equal(t, in.Storage, out.Storage)

	_, err = WriteCouncilFile(root, in)
	assert.Error(t, err, "existing council.toml must not be overwritten")
}

func TestProvider(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		root := t.TempDir()
		v := SetupViper(root, nil)

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(root, DataDirName), cfg.DataDir)
		assert.Equal(t, config.OutputTable, cfg.Output)
		assert.Equal(t, config.StorageFile, cfg.Storage.Backend)
		assert.Equal(t, filepath.Join(root, DataDirName, "journal.jsonl"), cfg.Storage.Path)
		assert.Equal(t, 72*time.Hour, cfg.DefaultTTL)
		assert.False(t, cfg.HasCaller)
		assert.Nil(t, cfg.At)
		assert.Empty(t, cfg.MetricsFile)
	})

	t.Run("council file and local config", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, CouncilFileName), `
[council]
default_ttl = "2h"

[storage]
backend = "badger"
path = "/var/lib/council"

[metrics]
textfile = "metrics/council.prom"
`)
		writeFile(t, filepath.Join(root, DataDirName, "config.local.json"),
			`{"caller": "0x3333333333333333333333333333333333333333", "output": "yaml"}`)

		cfg, err := Provider(SetupViper(root, nil))
		require.NoError(t, err)
		assert.Equal(t, config.StorageBadger, cfg.Storage.Backend)
		assert.Equal(t, "/var/lib/council", cfg.Storage.Path)
		assert.Equal(t, filepath.Join(root, "metrics", "council.prom"), cfg.MetricsFile)
		assert.Equal(t, 2*time.Hour, cfg.DefaultTTL)
		assert.Equal(t, config.OutputYAML, cfg.Output)
		assert.True(t, cfg.HasCaller)
		assert.Equal(t, common.HexToAddress("0x3333333333333333333333333333333333333333"), cfg.Caller)
	})

	t.Run("explicit values", func(t *testing.T) {
		root := t.TempDir()
		v := viper.New()
		v.Set("project_root", root)
		v.Set("at", "2026-04-01T10:00:00+02:00")
		v.Set("storage.backend", "sqlite")

		cfg, err := Provider(v)
		require.NoError(t, err)
		require.NotNil(t, cfg.At)
		assert.Equal(t, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC), *cfg.At)
		assert.Equal(t, filepath.Join(root, DataDirName, "journal.db"), cfg.Storage.Path)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for key, value := range map[string]string{
			"caller":          "not-an-address",
			"at":              "yesterday",
			"output":          "xml",
			"storage.backend": "postgres",
			"default_ttl":     "soon",
		} {
			v := viper.New()
			v.Set("project_root", t.TempDir())
			v.Set(key, value)
			_, err := Provider(v)
			assert.Error(t, err, key)
		}
	})
}
