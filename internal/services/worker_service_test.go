package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerTimerFiresAndDelivers(t *testing.T) {
	setupServices(t)
	workers, err := GetGlobalWorkerService()
	require.NoError(t, err)

	id, err := workers.StartTimer(10*time.Millisecond, "echo done")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	events := workers.Wait()
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, "echo done", events[0].Action)
	assert.Contains(t, events[0].Message, id)
	assert.Empty(t, workers.Pending())
}

func TestWorkerCancelSuppressesEvent(t *testing.T) {
	setupServices(t)
	workers, err := GetGlobalWorkerService()
	require.NoError(t, err)

	id, err := workers.StartTimer(time.Hour, "echo never")
	require.NoError(t, err)
	require.Contains(t, workers.Pending(), id)

	require.NoError(t, workers.Cancel(id))
	events := workers.Wait()
	assert.Empty(t, events, "cancelled timer posts nothing")

	assert.Error(t, workers.Cancel("nope"))
}

func TestWorkerWaitDrainsBeyondChannelCapacity(t *testing.T) {
	setupServices(t)
	workers, err := GetGlobalWorkerService()
	require.NoError(t, err)

	// More timers than the event channel buffers; Wait must keep
	// consuming so the late senders can finish.
	const n = 20
	for i := 0; i < n; i++ {
		_, err := workers.StartTimer(10*time.Millisecond, "echo tick")
		require.NoError(t, err)
	}

	done := make(chan []WorkerEvent, 1)
	go func() { done <- workers.Wait() }()

	select {
	case events := <-done:
		assert.Len(t, events, n)
		assert.Empty(t, workers.Pending())
	case <-time.After(3 * time.Second):
		t.Fatal("Wait did not return with more timers than the channel buffers")
	}
}

func TestWorkerReminderWithoutAction(t *testing.T) {
	setupServices(t)
	workers, err := GetGlobalWorkerService()
	require.NoError(t, err)

	_, err = workers.StartTimer(5*time.Millisecond, "")
	require.NoError(t, err)

	events := workers.Wait()
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Action)
	assert.Contains(t, events[0].Message, "finished")
}
