package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mklimuk/intent-pilot/pkg/reminder"
)

// Runner is the in-process dispatcher. It keeps the installed trigger
// set in memory, polls for due triggers, and fans each fired one out
// to every registered sender. A sender failure is logged and skipped;
// the remaining senders and triggers are unaffected.
type Runner struct {
	loc          *time.Location
	pollInterval time.Duration
	now          func() time.Time

	mu      sync.Mutex
	senders []Sender
	pending map[string]*scheduledTrigger

	stop chan struct{}
	wg   sync.WaitGroup
}

type scheduledTrigger struct {
	spec reminder.TriggerSpec
	next time.Time
}

var _ Dispatcher = (*Runner)(nil)

// NewRunner creates a runner firing in the given location.
func NewRunner(loc *time.Location, pollInterval time.Duration) *Runner {
	if loc == nil {
		loc = time.UTC
	}
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &Runner{
		loc:          loc,
		pollInterval: pollInterval,
		now:          time.Now,
		pending:      make(map[string]*scheduledTrigger),
		stop:         make(chan struct{}),
	}
}

// AddSender registers a delivery channel.
func (r *Runner) AddSender(s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders = append(r.senders, s)
}

// Schedule installs one trigger. Repeating triggers wait for their
// next calendar match; one-shot triggers (confirmations, errors) are
// delivered immediately.
func (r *Runner) Schedule(t reminder.TriggerSpec) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("reject trigger: %w", err)
	}

	if !t.Repeating {
		r.deliver(context.Background(), t)
		return nil
	}

	next := NextFire(t, r.now(), r.loc)
	if next.IsZero() {
		return fmt.Errorf("reject trigger %s: no matching fire time", t.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[t.ID] = &scheduledTrigger{spec: t, next: next}
	return nil
}

// Cancel removes the given trigger ids. Unknown ids are ignored.
func (r *Runner) Cancel(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.pending, id)
	}
}

// CancelAll removes every installed trigger.
func (r *Runner) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = make(map[string]*scheduledTrigger)
}

// Pending returns the ids of the installed triggers, for status
// reporting.
func (r *Runner) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.pending))
	for id := range r.pending {
		ids = append(ids, id)
	}
	return ids
}

// Start begins the polling loop.
func (r *Runner) Start() {
	r.wg.Add(1)
	go r.loop()
}

// Stop stops the polling loop and waits for shutdown.
func (r *Runner) Stop() {
	close(r.stop)
	r.wg.Wait()
}

func (r *Runner) loop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.runOnce(context.Background())
		case <-r.stop:
			return
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	now := r.now()

	r.mu.Lock()
	var due []reminder.TriggerSpec
	for id, st := range r.pending {
		if !st.next.After(now) {
			due = append(due, st.spec)
			st.next = NextFire(st.spec, now, r.loc)
			if st.next.IsZero() {
				delete(r.pending, id)
			}
		}
	}
	r.mu.Unlock()

	for _, t := range due {
		r.deliver(ctx, t)
	}
}

func (r *Runner) deliver(ctx context.Context, t reminder.TriggerSpec) {
	n := Notification{
		TriggerID:  t.ID,
		Title:      t.Title,
		Body:       t.Body,
		CategoryID: t.CategoryID,
	}

	r.mu.Lock()
	senders := make([]Sender, len(r.senders))
	copy(senders, r.senders)
	r.mu.Unlock()

	if len(senders) == 0 {
		log.Printf("notify: no senders registered, dropping %s", t.ID)
		return
	}
	for _, s := range senders {
		if err := s.Send(ctx, n); err != nil {
			log.Printf("notify: send %s failed: %v", t.ID, err)
		}
	}
}
