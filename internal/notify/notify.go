// Package notify carries the informational events the core emits while
// mutating state ("Task created", "Next task created: <date>", ...).
// Delivery and display are the consumer's responsibility.
package notify

// Severity classifies a notification for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier receives (message, severity) events. Implementations must not
// block; the core treats notification as fire-and-forget.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Func adapts a plain function to the Notifier interface.
type Func func(message string, severity Severity)

// Notify calls f.
func (f Func) Notify(message string, severity Severity) {
	f(message, severity)
}

// Discard drops every event.
var Discard Notifier = Func(func(string, Severity) {})

// Event is a recorded notification.
type Event struct {
	Message  string
	Severity Severity
}

// Recorder captures events for inspection in tests.
type Recorder struct {
	Events []Event
}

// Notify appends the event.
func (r *Recorder) Notify(message string, severity Severity) {
	r.Events = append(r.Events, Event{Message: message, Severity: severity})
}
