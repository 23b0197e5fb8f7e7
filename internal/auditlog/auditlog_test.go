package auditlog

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer so the test can hammer the logger from
// many goroutines without the buffer itself racing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRecordFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf)
	l.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 30, 12, 0, time.UTC)
	}

	if err := l.Record("probe-7 mos=4.1 loss=0.5"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	want := "2025-03-14 09:30:12 | REMOTE_LOG | probe-7 mos=4.1 loss=0.5\n"
	if got := buf.String(); got != want {
		t.Fatalf("audit line = %q, want %q", got, want)
	}
}

func TestRecordConcurrentAppends(t *testing.T) {
	t.Parallel()

	buf := &syncBuffer{}
	l := New(buf)

	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				if err := l.Record("message body"); err != nil {
					t.Errorf("Record: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != writers*perWriter {
		t.Fatalf("lines = %d, want %d", len(lines), writers*perWriter)
	}
	for i, line := range lines {
		if !strings.HasSuffix(line, "| REMOTE_LOG | message body") {
			t.Fatalf("line %d corrupted: %q", i, line)
		}
	}
}
