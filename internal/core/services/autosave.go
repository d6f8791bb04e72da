package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/margin/internal/core/ports/driving"
	"github.com/custodia-labs/margin/internal/logger"
)

// Ensure Autosave implements the interface.
var _ driving.Scheduler = (*Autosave)(nil)

// autosaveParser accepts standard five-field cron expressions.
var autosaveParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks that schedule is a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := autosaveParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid autosave schedule %q: %w", schedule, err)
	}
	return nil
}

// Autosave calls a trigger on a cron schedule. The trigger runs on the
// cron goroutine; event-loop callers should post a message from it rather
// than save directly.
type Autosave struct {
	schedule string
	trigger  func()

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	running bool
}

// NewAutosave validates schedule and returns a stopped scheduler.
func NewAutosave(schedule string, trigger func()) (*Autosave, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return nil, err
	}
	return &Autosave{
		schedule: schedule,
		trigger:  trigger,
		cron:     cron.New(cron.WithParser(autosaveParser)),
	}, nil
}

// Start schedules the trigger. Starting a running scheduler is a no-op.
func (a *Autosave) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return nil
	}

	entryID, err := a.cron.AddFunc(a.schedule, a.trigger)
	if err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}
	a.entryID = entryID
	a.cron.Start()
	a.running = true

	logger.Debug("autosave scheduled with %q", a.schedule)
	return nil
}

// Stop removes the schedule and waits for a running trigger to return.
func (a *Autosave) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return
	}

	ctx := a.cron.Stop()
	<-ctx.Done()
	a.cron.Remove(a.entryID)
	a.running = false
}

// Running reports whether the trigger is scheduled.
func (a *Autosave) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Next returns the next time the trigger fires after t.
func (a *Autosave) Next(t time.Time) time.Time {
	sched, err := autosaveParser.Parse(a.schedule)
	if err != nil {
		return time.Time{}
	}
	return sched.Next(t)
}
