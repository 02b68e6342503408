package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pinged struct{}

func (pinged) Name() string { return "test.pinged" }

type ignored struct{}

func (ignored) Name() string { return "test.ignored" }

func TestPublishReachesEverySubscriber(t *testing.T) {
	bus := New(zap.NewNop())
	var calls atomic.Int32

	bus.Subscribe("test.pinged", func(ctx context.Context, e Event) error {
		calls.Add(1)
		return nil
	})
	bus.Subscribe("test.pinged", func(ctx context.Context, e Event) error {
		calls.Add(1)
		return errors.New("logged, not propagated")
	})

	bus.Publish(context.Background(), pinged{})
	bus.Publish(context.Background(), ignored{})
	bus.Wait()

	assert.Equal(t, int32(2), calls.Load())
}

func TestListenerContextOutlivesRequest(t *testing.T) {
	bus := New(zap.NewNop())
	var live atomic.Bool

	bus.Subscribe("test.pinged", func(ctx context.Context, e Event) error {
		live.Store(ctx.Err() == nil)
		return nil
	})

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(reqCtx, pinged{})
	bus.Wait()

	assert.True(t, live.Load())
}
