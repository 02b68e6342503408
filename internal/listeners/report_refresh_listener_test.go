package listeners

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"lab-inventory/internal/events"
	"lab-inventory/pkg/eventbus"
)

type countingHub struct{ n atomic.Int32 }

func (h *countingHub) RefreshAll() int {
	h.n.Add(1)
	return 1
}

func TestItemsChangedRefreshesLiveReports(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	hub := &countingHub{}
	NewReportRefreshListener(hub, zap.NewNop()).Register(bus)

	bus.Publish(context.Background(), events.ItemsChangedEvent{Scope: events.ScopeGlobal, ItemID: "3", Action: "deleted"})
	bus.Publish(context.Background(), events.ItemsChangedEvent{Scope: events.ScopeLaboratory, LabID: "42", Action: "created"})
	bus.Wait()

	assert.Equal(t, int32(2), hub.n.Load())
}
