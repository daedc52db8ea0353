package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// JournalRepository persists the append-only log of accepted operations
type JournalRepository interface {
	// Exists reports whether a genesis entry has been written
	Exists(ctx context.Context) (bool, error)
	// Load returns every entry in sequence order
	Load(ctx context.Context) ([]*models.JournalEntry, error)
	// Append stores one sealed entry after the current last entry
	Append(ctx context.Context, entry *models.JournalEntry) error
	// Location describes where the journal lives, for display
	Location() string
}

// NotificationPublisher delivers notifications to subscribers, in order.
// Delivery is fire-and-forget; the journal is the source of truth.
type NotificationPublisher interface {
	Publish(ctx context.Context, notes []models.Notification)
}

// Clock supplies the ambient time of an operation
type Clock interface {
	Now() time.Time
}

// MotionSelector handles interactive selection of motions
type MotionSelector interface {
	SelectMotion(ctx context.Context, motions []*MotionView, prompt string) (*MotionView, error)
}

// LocalConfigRepository manages local configuration persistence
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// CouncilFileRepository manages the project's council.toml
type CouncilFileRepository interface {
	Exists() bool
	Write(ctx context.Context, cfg *config.CouncilFileConfig) (string, error)
}

// MotionView is a motion with its derived state and live quorum
type MotionView struct {
	Motion *models.Motion      `json:"motion"`
	State  models.MotionState  `json:"state"`
	Quorum models.QuorumStatus `json:"quorum"`
}
