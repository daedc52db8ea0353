package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

// SubscriberID identifies a subscription
type SubscriberID int

// Subscriber receives notifications in publication order
type Subscriber interface {
	Deliver(ctx context.Context, note models.Notification) error
}

// SubscriberFunc adapts a function to Subscriber
type SubscriberFunc func(ctx context.Context, note models.Notification) error

func (f SubscriberFunc) Deliver(ctx context.Context, note models.Notification) error {
	return f(ctx, note)
}

type busMetrics struct {
	notificationsTotal *prometheus.CounterVec
	deliveryErrors     *prometheus.CounterVec
	subscribers        prometheus.Gauge
}

// Bus fans notifications out to subscribers synchronously. A subscriber that
// fails or panics is dropped; the journal stays the source of truth.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[SubscriberID]Subscriber
	order       []SubscriberID
	lastSubID   SubscriberID
	metrics     *busMetrics
	gatherer    prometheus.Gatherer
	logger      *slog.Logger
}

// NewBus creates a notification bus. A nil registry disables metrics.
func NewBus(promRegistry *prometheus.Registry, logger *slog.Logger) *Bus {
	b := &Bus{
		subscribers: make(map[SubscriberID]Subscriber),
		logger:      logger,
	}
	if promRegistry != nil {
		b.initMetrics(promRegistry)
		b.gatherer = promRegistry
	}
	return b
}

func (b *Bus) initMetrics(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	b.metrics = &busMetrics{
		notificationsTotal: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "council_notifications_total",
				Help: "notifications published, by type",
			},
			[]string{"type"},
		),
		deliveryErrors: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "council_notification_delivery_errors_total",
				Help: "notification deliveries that failed, by type",
			},
			[]string{"type"},
		),
		subscribers: promautoFactory.NewGauge(
			prometheus.GaugeOpts{
				Name: "council_notification_subscribers",
				Help: "current number of notification subscribers",
			},
		),
	}
}

// Subscribe registers a subscriber. Subscribers are called in the order they
// subscribed.
func (b *Bus) Subscribe(sub Subscriber) SubscriberID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastSubID++
	id := b.lastSubID
	b.subscribers[id] = sub
	b.order = append(b.order, id)
	if b.metrics != nil {
		b.metrics.subscribers.Inc()
	}
	return id
}

// Unsubscribe removes a subscriber
func (b *Bus) Unsubscribe(id SubscriberID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[id]; !ok {
		return
	}
	delete(b.subscribers, id)
	for i, sid := range b.order {
		if sid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	if b.metrics != nil {
		b.metrics.subscribers.Dec()
	}
}

// Publish delivers every notification, in order, to every subscriber
func (b *Bus) Publish(ctx context.Context, notes []models.Notification) {
	for _, note := range notes {
		b.publish(ctx, note)
	}
}

func (b *Bus) publish(ctx context.Context, note models.Notification) {
	type subItem struct {
		id  SubscriberID
		sub Subscriber
	}
	b.mu.RLock()
	subList := make([]subItem, 0, len(b.order))
	for _, id := range b.order {
		subList = append(subList, subItem{id: id, sub: b.subscribers[id]})
	}
	b.mu.RUnlock()

	for _, item := range subList {
		var deliverErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					deliverErr = fmt.Errorf("subscriber deliver panic: %v", r)
				}
			}()
			deliverErr = item.sub.Deliver(ctx, note)
		}()

		if deliverErr != nil {
			b.Unsubscribe(item.id)
			if b.metrics != nil {
				b.metrics.deliveryErrors.WithLabelValues(string(note.NotificationType())).Inc()
			}
			b.logger.Warn("notification delivery failed",
				"type", note.NotificationType(),
				"motion", note.Motion(),
				"err", deliverErr,
			)
		}
	}
	if b.metrics != nil {
		b.metrics.notificationsTotal.WithLabelValues(string(note.NotificationType())).Inc()
	}
}

// WriteTextfile writes the bus metrics in Prometheus text format, for the
// node exporter textfile collector
func (b *Bus) WriteTextfile(path string) error {
	if b.gatherer == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, b.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Ensure Bus implements NotificationPublisher
var _ usecase.NotificationPublisher = (*Bus)(nil)
