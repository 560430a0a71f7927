package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []Event
	dispatcher.Subscribe(EventRepairStatusChanged, func(_ context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventRepairStatusChanged, RepairID: "repair-1"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "repair-1", seen[0].RepairID)
}

func TestDispatcherPublishIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := 0
	dispatcher.Subscribe(EventRepairCreated, func(context.Context, Event) error {
		called++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventRepairDeleted})
	require.NoError(t, err)
	assert.Zero(t, called)
}

func TestDispatcherPublishRunsAllHandlersAndJoinsErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	errFirst := errors.New("first handler failed")
	order := []string{}
	dispatcher.Subscribe(EventRepairStatusChanged, func(context.Context, Event) error {
		order = append(order, "first")
		return errFirst
	})
	dispatcher.Subscribe(EventRepairStatusChanged, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventRepairStatusChanged})
	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatcherPublishWithNoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventRepairCreated}))
}
