package fs

import (
	"context"
	"os"
	"path/filepath"

	internalconfig "github.com/trebuchet-org/council/internal/config"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/usecase"
)

// CouncilFileStoreAdapter implements CouncilFileRepository for the
// project's council.toml
type CouncilFileStoreAdapter struct {
	projectRoot string
}

// NewCouncilFileStoreAdapter creates a new CouncilFileStoreAdapter
func NewCouncilFileStoreAdapter(cfg *config.RuntimeConfig) *CouncilFileStoreAdapter {
	return &CouncilFileStoreAdapter{projectRoot: cfg.ProjectRoot}
}

// Exists checks if council.toml exists
func (s *CouncilFileStoreAdapter) Exists() bool {
	_, err := os.Stat(filepath.Join(s.projectRoot, internalconfig.CouncilFileName))
	return err == nil
}

// Write creates council.toml
func (s *CouncilFileStoreAdapter) Write(_ context.Context, cfg *config.CouncilFileConfig) (string, error) {
	return internalconfig.WriteCouncilFile(s.projectRoot, cfg)
}

// Ensure CouncilFileStoreAdapter implements CouncilFileRepository
var _ usecase.CouncilFileRepository = (*CouncilFileStoreAdapter)(nil)
