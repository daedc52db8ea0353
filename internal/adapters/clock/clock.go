package clock

import (
	"time"

	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/usecase"
)

// Clock supplies the ambient time of an operation: the --at override when
// given, the wall clock otherwise. Times are always UTC.
type Clock struct {
	fixed *time.Time
}

// NewClock creates a clock from the runtime configuration
func NewClock(cfg *config.RuntimeConfig) *Clock {
	return &Clock{fixed: cfg.At}
}

// Now returns the current ambient time
func (c *Clock) Now() time.Time {
	if c.fixed != nil {
		return c.fixed.UTC()
	}
	return time.Now().UTC()
}

var _ usecase.Clock = (*Clock)(nil)
