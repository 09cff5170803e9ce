package plugin

import (
	"sync"

	"go.uber.org/zap"
)

// LogNotifier renders message boxes as log entries, for headless hosts.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier writing to logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) Information(_ Window, title, body string) {
	n.logger.Info(body, zap.String("title", title))
}

func (n *LogNotifier) Warning(_ Window, title, body string) {
	n.logger.Warn(body, zap.String("title", title))
}

func (n *LogNotifier) Critical(_ Window, title, body string) {
	n.logger.Error(body, zap.String("title", title))
}

// Notification is one message box recorded by RecordingNotifier.
type Notification struct {
	Level  string `json:"level"`
	Parent Window `json:"-"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// RecordingNotifier keeps every notification in memory. The inspector uses it
// to return what an invoked tool showed; tests use it as a fake.
type RecordingNotifier struct {
	mu    sync.Mutex
	items []Notification
	next  Notifier
}

// NewRecordingNotifier records notifications and forwards them to next, if set.
func NewRecordingNotifier(next Notifier) *RecordingNotifier {
	return &RecordingNotifier{next: next}
}

func (n *RecordingNotifier) record(level string, parent Window, title, body string) {
	n.mu.Lock()
	n.items = append(n.items, Notification{Level: level, Parent: parent, Title: title, Body: body})
	n.mu.Unlock()
}

func (n *RecordingNotifier) Information(parent Window, title, body string) {
	n.record("information", parent, title, body)
	if n.next != nil {
		n.next.Information(parent, title, body)
	}
}

func (n *RecordingNotifier) Warning(parent Window, title, body string) {
	n.record("warning", parent, title, body)
	if n.next != nil {
		n.next.Warning(parent, title, body)
	}
}

func (n *RecordingNotifier) Critical(parent Window, title, body string) {
	n.record("critical", parent, title, body)
	if n.next != nil {
		n.next.Critical(parent, title, body)
	}
}

// Notifications returns a copy of everything recorded so far.
func (n *RecordingNotifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.items...)
}

// Len returns the number of recorded notifications.
func (n *RecordingNotifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}

// Reset drops recorded notifications.
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	n.items = nil
	n.mu.Unlock()
}
