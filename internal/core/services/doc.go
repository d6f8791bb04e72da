// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The viewer services (ViewportController, DragController and
// DocumentSession) are owned by a single event loop and are not meant to be
// driven from several goroutines at once. AnnotationStore is safe for
// concurrent use.
package services
