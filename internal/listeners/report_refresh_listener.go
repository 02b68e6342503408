package listeners

import (
	"context"

	"go.uber.org/zap"

	"lab-inventory/internal/events"
	"lab-inventory/pkg/eventbus"
)

// Refresher is implemented by the websocket hub.
type Refresher interface {
	RefreshAll() int
}

// ReportRefreshListener wakes every live report poller after a write.
type ReportRefreshListener struct {
	hub    Refresher
	logger *zap.Logger
}

func NewReportRefreshListener(hub Refresher, logger *zap.Logger) *ReportRefreshListener {
	return &ReportRefreshListener{hub: hub, logger: logger.Named("report_refresh")}
}

func (l *ReportRefreshListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ItemsChangedEventName, l.handleItemsChanged)
	l.logger.Info("subscribed", zap.String("event", events.ItemsChangedEventName))
}

func (l *ReportRefreshListener) handleItemsChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.ItemsChangedEvent)
	if !ok {
		return nil
	}
	n := l.hub.RefreshAll()
	l.logger.Debug("live reports refreshed",
		zap.String("scope", string(e.Scope)),
		zap.String("action", e.Action),
		zap.String("item_id", e.ItemID.String()),
		zap.Int("views", n),
	)
	return nil
}
