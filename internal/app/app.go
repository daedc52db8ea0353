package app

import (
	"log/slog"

	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Council use cases
	InitCouncil   *usecase.InitCouncil
	ProposeMotion *usecase.ProposeMotion
	CastVote      *usecase.CastVote
	CancelMotion  *usecase.CancelMotion
	VetoMotion    *usecase.VetoMotion
	EnactMotion   *usecase.EnactMotion
	SelectMotion  *usecase.SelectMotion

	// Queries
	ShowCouncil *usecase.ShowCouncil
	ListMotions *usecase.ListMotions
	ShowMotion  *usecase.ShowMotion
	ShowHistory *usecase.ShowHistory

	// Local configuration
	ShowConfig   *usecase.ShowConfig
	SetConfig    *usecase.SetConfig
	RemoveConfig *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	initCouncil *usecase.InitCouncil,
	proposeMotion *usecase.ProposeMotion,
	castVote *usecase.CastVote,
	cancelMotion *usecase.CancelMotion,
	vetoMotion *usecase.VetoMotion,
	enactMotion *usecase.EnactMotion,
	selectMotion *usecase.SelectMotion,
	showCouncil *usecase.ShowCouncil,
	listMotions *usecase.ListMotions,
	showMotion *usecase.ShowMotion,
	showHistory *usecase.ShowHistory,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) *App {
	return &App{
		Config:        cfg,
		Logger:        logger,
		InitCouncil:   initCouncil,
		ProposeMotion: proposeMotion,
		CastVote:      castVote,
		CancelMotion:  cancelMotion,
		VetoMotion:    vetoMotion,
		EnactMotion:   enactMotion,
		SelectMotion:  selectMotion,
		ShowCouncil:   showCouncil,
		ListMotions:   listMotions,
		ShowMotion:    showMotion,
		ShowHistory:   showHistory,
		ShowConfig:    showConfig,
		SetConfig:     setConfig,
		RemoveConfig:  removeConfig,
	}
}
