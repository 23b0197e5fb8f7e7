// Package auditlog provides the durable append-only record of every probe
// message the receiver accepts, independent of whether downstream delivery
// succeeds.
package auditlog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Logger appends timestamped audit lines to an injected writer. A mutex
// keeps concurrent request handlers from interleaving partial lines; the
// writer itself (typically a rotating file) need not be safe for concurrent
// use.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// New creates an audit logger over w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Record appends one audit line for a received probe message.
// Format: "2006-01-02 15:04:05 | REMOTE_LOG | <message>".
func (l *Logger) Record(message string) error {
	line := fmt.Sprintf("%s | REMOTE_LOG | %s\n", l.now().Format(timeLayout), message)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.w, line); err != nil {
		return fmt.Errorf("auditlog: write: %w", err)
	}
	return nil
}
