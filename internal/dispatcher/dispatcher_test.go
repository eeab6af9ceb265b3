package dispatcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/billedapp/billflow/internal/domain/event"
)

func TestDispatcher_DispatchInOrder(t *testing.T) {
	d := New(zap.NewNop())

	var order []string
	d.Subscribe(event.TypeBillAccepted, "first", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "first")
		return nil
	})
	d.Subscribe(event.TypeBillAccepted, "second", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "second")
		return nil
	})

	evt := event.NewEvent(event.TypeBillAccepted, "b1", nil)
	require.NoError(t, d.Dispatch(context.Background(), evt))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatcher_DispatchStopsOnError(t *testing.T) {
	d := New(zap.NewNop())

	boom := errors.New("boom")
	var secondRan bool
	d.Subscribe(event.TypeBillRefused, "failing", func(ctx context.Context, evt *event.Event) error {
		return boom
	})
	d.Subscribe(event.TypeBillRefused, "after", func(ctx context.Context, evt *event.Event) error {
		secondRan = true
		return nil
	})

	err := d.Dispatch(context.Background(), event.NewEvent(event.TypeBillRefused, "b1", nil))
	require.ErrorIs(t, err, boom)
	assert.False(t, secondRan)
}

func TestDispatcher_DispatchAsyncSwallowsErrors(t *testing.T) {
	d := New(zap.NewNop())

	var calls atomic.Int32
	d.Subscribe(event.TypeBillUpdated, "failing", func(ctx context.Context, evt *event.Event) error {
		calls.Add(1)
		return errors.New("boom")
	})

	d.DispatchAsync(context.Background(), event.NewEvent(event.TypeBillUpdated, "b1", nil))
	require.NoError(t, d.Close()) // waits for in-flight handlers

	assert.Equal(t, int32(1), calls.Load())
}

func TestDispatcher_PanicRecovered(t *testing.T) {
	d := New(zap.NewNop())

	d.Subscribe(event.TypeBillAccepted, "panicking", func(ctx context.Context, evt *event.Event) error {
		panic("handler bug")
	})

	err := d.Dispatch(context.Background(), event.NewEvent(event.TypeBillAccepted, "b1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestDispatcher_ClosedRejectsDispatch(t *testing.T) {
	d := New(zap.NewNop())
	require.NoError(t, d.Close())

	err := d.Dispatch(context.Background(), event.NewEvent(event.TypeBillAccepted, "b1", nil))
	assert.Error(t, err)
}
