package app

import (
	"strings"
	"sync"
	"time"
)

const logDebounceInterval = 150 * time.Millisecond

// logBuffer keeps the most recent log lines and pushes them to a sink after
// writes have been quiet for logDebounceInterval.
type logBuffer struct {
	mu      sync.Mutex
	lines   []string
	partial string
	limit   int

	sink     func(string)
	updateCh chan struct{}
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

func newLogBuffer(limit int, sink func(string)) *logBuffer {
	if limit <= 0 {
		limit = 200
	}
	return &logBuffer{limit: limit, sink: sink}
}

// Write implements io.Writer so the buffer can sit behind a slog handler.
func (l *logBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	text := l.partial + strings.ReplaceAll(string(p), "\r\n", "\n")
	parts := strings.Split(text, "\n")
	l.partial = parts[len(parts)-1]
	for _, part := range parts[:len(parts)-1] {
		if part == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	ch := l.updateCh
	l.mu.Unlock()

	if ch == nil {
		l.flush()
		return len(p), nil
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	return len(p), nil
}

// Lines returns a copy of the buffered lines.
func (l *logBuffer) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *logBuffer) Text() string {
	return strings.Join(l.Lines(), "\n")
}

func (l *logBuffer) start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.updateCh != nil {
		return
	}
	l.updateCh = make(chan struct{}, 1)
	l.done = make(chan struct{})
	l.exited = make(chan struct{})
	go l.loop(l.updateCh, l.done)
}

// stop flushes pending lines and waits for the update loop to exit.
func (l *logBuffer) stop() {
	l.mu.Lock()
	done, exited := l.done, l.exited
	l.mu.Unlock()
	if done == nil {
		return
	}
	l.stopOnce.Do(func() { close(done) })
	<-exited
}

func (l *logBuffer) loop(updates <-chan struct{}, done <-chan struct{}) {
	defer close(l.exited)
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-done:
			timer.Stop()
			l.flush()
			return
		case <-updates:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			l.flush()
		}
	}
}

func (l *logBuffer) flush() {
	if l.sink != nil {
		l.sink(l.Text())
	}
}
