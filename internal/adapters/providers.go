package adapters

import (
	"log/slog"
	"os"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/trebuchet-org/council/internal/adapters/badger"
	"github.com/trebuchet-org/council/internal/adapters/clock"
	"github.com/trebuchet-org/council/internal/adapters/fs"
	"github.com/trebuchet-org/council/internal/adapters/interactive"
	"github.com/trebuchet-org/council/internal/adapters/notify"
	"github.com/trebuchet-org/council/internal/adapters/progress"
	"github.com/trebuchet-org/council/internal/adapters/sqlite"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/usecase"
)

// ProvideJournalRepository opens the journal backend selected in the runtime
// configuration. The cleanup closes it.
func ProvideJournalRepository(cfg *config.RuntimeConfig, logger *slog.Logger) (usecase.JournalRepository, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		store, err := sqlite.NewJournalStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, closer("sqlite", store.Close, logger), nil
	case config.StorageBadger:
		store, err := badger.NewJournalStore(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, closer("badger", store.Close, logger), nil
	default:
		return fs.NewJournalStoreAdapter(cfg), func() {}, nil
	}
}

func closer(name string, closeFn func() error, logger *slog.Logger) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close journal", "backend", name, "err", err)
		}
	}
}

// ProvidePrometheusRegistry provides the registry notification metrics are
// recorded in
func ProvidePrometheusRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideNotificationBus provides the bus with the log subscriber attached.
// The cleanup flushes metrics to the configured textfile.
func ProvideNotificationBus(cfg *config.RuntimeConfig, registry *prometheus.Registry, logger *slog.Logger) (*notify.Bus, func()) {
	bus := notify.NewBus(registry, logger)
	bus.Subscribe(notify.NewLogSubscriber(logger))
	return bus, func() {
		if err := bus.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("failed to write metrics textfile", "path", cfg.MetricsFile, "err", err)
		}
	}
}

// ProvideProgressSink shows replay progress only for interactive table output
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Output != config.OutputTable {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink(os.Stderr)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),

	fs.NewCouncilFileStoreAdapter,
	wire.Bind(new(usecase.CouncilFileRepository), new(*fs.CouncilFileStoreAdapter)),
)

// JournalSet provides the journal backend
var JournalSet = wire.NewSet(
	ProvideJournalRepository,
)

// NotifySet provides notification delivery
var NotifySet = wire.NewSet(
	ProvidePrometheusRegistry,
	ProvideNotificationBus,
	wire.Bind(new(usecase.NotificationPublisher), new(*notify.Bus)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.MotionSelector), new(*interactive.SelectorAdapter)),
)

// ProgressSet provides replay progress reporting
var ProgressSet = wire.NewSet(
	ProvideProgressSink,
)

// ClockSet provides the ambient clock
var ClockSet = wire.NewSet(
	clock.NewClock,
	wire.Bind(new(usecase.Clock), new(*clock.Clock)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	JournalSet,
	NotifySet,
	InteractiveSet,
	ProgressSet,
	ClockSet,
)
