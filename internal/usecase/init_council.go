package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/council"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// InitCouncilParams contains parameters for founding a council
type InitCouncilParams struct {
	Name    string
	Founder common.Address
}

// InitCouncilResult contains the result of founding a council
type InitCouncilResult struct {
	Snapshot        *models.CouncilSnapshot
	Genesis         *models.JournalEntry
	JournalLocation string
	CouncilFile     string
	CouncilFileNew  bool
}

// InitCouncil writes the genesis entry of a new council and, when the
// project has none yet, its council.toml
type InitCouncil struct {
	config  *config.RuntimeConfig
	journal JournalRepository
	files   CouncilFileRepository
	clock   Clock
	log     *slog.Logger
}

// NewInitCouncil creates a new InitCouncil use case
func NewInitCouncil(
	cfg *config.RuntimeConfig,
	journal JournalRepository,
	files CouncilFileRepository,
	clock Clock,
	log *slog.Logger,
) *InitCouncil {
	return &InitCouncil{
		config:  cfg,
		journal: journal,
		files:   files,
		clock:   clock,
		log:     log,
	}
}

// Run executes the init council use case
func (uc *InitCouncil) Run(ctx context.Context, params InitCouncilParams) (*InitCouncilResult, error) {
	if params.Founder == (common.Address{}) {
		return nil, errors.New("founder address is required")
	}

	exists, err := uc.journal.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check journal: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("council journal at %s: %w", uc.journal.Location(), domain.ErrAlreadyExists)
	}

	name := params.Name
	if name == "" {
		name = filepath.Base(uc.config.ProjectRoot)
	}

	genesis := &models.JournalEntry{
		At:     uc.clock.Now(),
		Caller: params.Founder,
		Op:     models.OpGenesis,
		Genesis: &models.GenesisPayload{
			Name:    name,
			Founder: params.Founder,
		},
	}
	c, err := council.FromGenesis(genesis)
	if err != nil {
		return nil, err
	}
	if err := genesis.Seal(nil); err != nil {
		return nil, err
	}
	if err := uc.journal.Append(ctx, genesis); err != nil {
		return nil, fmt.Errorf("failed to write genesis: %w", err)
	}
	uc.log.Info("council founded", "name", name, "founder", params.Founder.Hex())

	result := &InitCouncilResult{
		Snapshot:        c.Snapshot(),
		Genesis:         genesis,
		JournalLocation: uc.journal.Location(),
	}

	if !uc.files.Exists() {
		path, err := uc.files.Write(ctx, &config.CouncilFileConfig{
			Council: config.CouncilSection{
				Name:       name,
				Founder:    params.Founder.Hex(),
				DefaultTTL: uc.config.DefaultTTL.String(),
			},
			Storage: config.StorageSection{
				Backend: string(uc.config.Storage.Backend),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("council founded but council.toml could not be written: %w", err)
		}
		result.CouncilFile = path
		result.CouncilFileNew = true
	}

	return result, nil
}
