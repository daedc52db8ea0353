//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/council/internal/adapters"
	"github.com/trebuchet-org/council/internal/config"
	"github.com/trebuchet-org/council/internal/logging"
	"github.com/trebuchet-org/council/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewCouncilSession,
		usecase.NewInitCouncil,
		usecase.NewProposeMotion,
		usecase.NewCastVote,
		usecase.NewCancelMotion,
		usecase.NewVetoMotion,
		usecase.NewEnactMotion,
		usecase.NewSelectMotion,
		usecase.NewShowCouncil,
		usecase.NewListMotions,
		usecase.NewShowMotion,
		usecase.NewShowHistory,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil, nil
}
