package driving

// Scheduler runs a background trigger on a schedule, such as autosave.
type Scheduler interface {
	// Start begins running the trigger. Starting twice is a no-op.
	Start() error

	// Stop removes the schedule and waits for a running trigger to return.
	Stop()

	// Running reports whether the trigger is scheduled.
	Running() bool
}
