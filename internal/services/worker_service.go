package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"cmcshell/internal/logger"
)

// WorkerEvent is what a finished timer posts back to the interpreter.
// Workers never run commands or touch session state themselves; the main
// loop drains events and executes any action on the interpreter thread,
// preserving the single-writer discipline.
type WorkerEvent struct {
	ID      string
	Action  string // command to execute, empty for a plain reminder
	Message string
}

// WorkerService starts and tracks background timers. Cancellation is
// cooperative through per-worker contexts; the interpreter loop only
// blocks on workers at the explicit wait command.
type WorkerService struct {
	initialized bool
	log         *log.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
	events  chan WorkerEvent
}

// NewWorkerService creates a WorkerService instance.
func NewWorkerService() *WorkerService {
	return &WorkerService{
		cancels: make(map[string]context.CancelFunc),
		events:  make(chan WorkerEvent, 16),
	}
}

// Name returns the service name "worker" for registration.
func (w *WorkerService) Name() string { return "worker" }

// Initialize prepares the service for use.
func (w *WorkerService) Initialize() error {
	w.log = logger.NewStyledLogger("worker")
	w.initialized = true
	return nil
}

// StartTimer schedules an action (or reminder) after the given delay and
// returns the worker id.
func (w *WorkerService) StartTimer(delay time.Duration, action string) (string, error) {
	if !w.initialized {
		return "", fmt.Errorf("worker service not initialized")
	}
	id := uuid.NewString()[:8]
	ctx, cancel := context.WithCancel(context.Background())

	w.mu.Lock()
	w.cancels[id] = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.finish(id)

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			w.log.Debug("Timer cancelled", "id", id)
		case <-timer.C:
			w.log.Debug("Timer fired", "id", id, "action", action)
			event := WorkerEvent{ID: id, Action: action}
			if action == "" {
				event.Message = fmt.Sprintf("Timer %s finished (%s).", id, delay)
			} else {
				event.Message = fmt.Sprintf("Timer %s triggered: %s", id, action)
			}
			w.events <- event
		}
	}()
	return id, nil
}

// Cancel stops a running worker. NotFound-style error when unknown.
func (w *WorkerService) Cancel(id string) error {
	w.mu.Lock()
	cancel, ok := w.cancels[id]
	w.mu.Unlock()
	if !ok {
		return fmt.Errorf("no running worker %q", id)
	}
	cancel()
	return nil
}

// Pending returns the ids of running workers, sorted.
func (w *WorkerService) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]string, 0, len(w.cancels))
	for id := range w.cancels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Drain returns every event already posted, without blocking.
func (w *WorkerService) Drain() []WorkerEvent {
	var out []WorkerEvent
	for {
		select {
		case ev := <-w.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Wait blocks until all running workers complete and returns their
// events. Events are consumed while waiting; a worker blocked on a full
// event channel would otherwise never finish.
func (w *WorkerService) Wait() []WorkerEvent {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	var out []WorkerEvent
	for {
		select {
		case ev := <-w.events:
			out = append(out, ev)
		case <-done:
			return append(out, w.Drain()...)
		}
	}
}

func (w *WorkerService) finish(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if cancel, ok := w.cancels[id]; ok {
		cancel()
		delete(w.cancels, id)
	}
}
