package trajectory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/daniacca/nastrand/internal/kinetics"
)

// Notifier is the interface every notification channel must implement.
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, event StepEvent) error
	Close() error
}

type notificationJob struct {
	Event       StepEvent
	NotifierIDs []string
}

// NotificationManager fans a StepEvent out to a set of registered
// Notifiers, asynchronously via a bounded worker queue, with
// exponential-backoff retry per notifier.
type NotificationManager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	jobs      chan notificationJob
	closed    bool
	wg        sync.WaitGroup
	log       kinetics.Logger
}

// NewNotificationManager creates a manager with a single delivery worker.
func NewNotificationManager(log kinetics.Logger) *NotificationManager {
	if log == nil {
		log = kinetics.NoOpLogger{}
	}
	nm := &NotificationManager{
		notifiers: make(map[string]Notifier),
		jobs:      make(chan notificationJob, 1024),
		log:       log,
	}
	nm.wg.Add(1)
	go nm.worker()
	return nm
}

// RegisterNotifier registers a notifier under its own ID.
func (nm *NotificationManager) RegisterNotifier(notifier Notifier) error {
	if notifier == nil {
		return fmt.Errorf("trajectory: notifier cannot be nil")
	}
	id := notifier.ID()
	if id == "" {
		return fmt.Errorf("trajectory: notifier ID cannot be empty")
	}

	nm.mu.Lock()
	defer nm.mu.Unlock()
	if _, exists := nm.notifiers[id]; exists {
		return fmt.Errorf("trajectory: notifier with ID %s already exists", id)
	}
	nm.notifiers[id] = notifier
	return nil
}

// UnregisterNotifier closes and removes a notifier.
func (nm *NotificationManager) UnregisterNotifier(id string) error {
	nm.mu.Lock()
	notifier, exists := nm.notifiers[id]
	if exists {
		delete(nm.notifiers, id)
	}
	nm.mu.Unlock()

	if !exists {
		return fmt.Errorf("trajectory: notifier with ID %s not found", id)
	}
	if err := notifier.Close(); err != nil {
		return fmt.Errorf("trajectory: closing notifier %s: %w", id, err)
	}
	return nil
}

// Enqueue schedules event for asynchronous delivery to notifierIDs.
// Non-blocking: if the queue is full the event is dropped and logged.
func (nm *NotificationManager) Enqueue(event StepEvent, notifierIDs []string) {
	if len(notifierIDs) == 0 {
		return
	}
	nm.mu.RLock()
	closed := nm.closed
	nm.mu.RUnlock()
	if closed {
		return
	}

	select {
	case nm.jobs <- notificationJob{Event: event, NotifierIDs: notifierIDs}:
	default:
		nm.log.Warnf("trajectory: notification queue full, dropping event for run=%s step=%d", event.RunID, event.Step)
	}
}

func (nm *NotificationManager) worker() {
	defer nm.wg.Done()
	for job := range nm.jobs {
		nm.dispatchJob(job)
	}
}

func (nm *NotificationManager) dispatchJob(job notificationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, id := range job.NotifierIDs {
		nm.notifyWithRetry(ctx, id, job.Event)
	}
}

func (nm *NotificationManager) notifyWithRetry(ctx context.Context, notifierID string, event StepEvent) {
	nm.mu.RLock()
	notifier, ok := nm.notifiers[notifierID]
	nm.mu.RUnlock()
	if !ok {
		nm.log.Errorf("trajectory: notification failed: notifier=%s error=notifier not found", notifierID)
		return
	}

	const maxRetries = 3
	backoff := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := notifier.Notify(ctx, event)
		if err == nil {
			return
		}
		nm.log.Warnf("trajectory: notification failed: notifier=%s attempt=%d error=%v", notifierID, attempt+1, err)
		if attempt == maxRetries {
			nm.log.Errorf("trajectory: notification failed after %d attempts: notifier=%s", maxRetries+1, notifierID)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

// Close shuts down the worker and closes every registered notifier.
func (nm *NotificationManager) Close() error {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return nil
	}
	nm.closed = true
	close(nm.jobs)
	nm.mu.Unlock()

	nm.wg.Wait()

	nm.mu.Lock()
	defer nm.mu.Unlock()
	var errs []error
	for id, notifier := range nm.notifiers {
		if err := notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing notifier %s: %w", id, err))
		}
	}
	nm.notifiers = make(map[string]Notifier)
	if len(errs) > 0 {
		return fmt.Errorf("trajectory: errors closing notifiers: %v", errs)
	}
	return nil
}
