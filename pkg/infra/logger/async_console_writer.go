package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// AsyncConsoleHook mirrors entries to a console writer without blocking the
// request path. Entries that do not fit in the buffer are counted and dropped.
type AsyncConsoleHook struct {
	out     io.Writer
	levels  []logrus.Level
	lines   chan string
	done    chan struct{}
	dropped atomic.Uint64
	once    sync.Once
	wg      sync.WaitGroup
}

// NewAsyncConsoleHook writes to out (stdout when nil). A nil levels slice
// mirrors every level.
func NewAsyncConsoleHook(out io.Writer, bufferSize int, levels []logrus.Level) *AsyncConsoleHook {
	if out == nil {
		out = os.Stdout
	}
	if levels == nil {
		levels = logrus.AllLevels
	}
	hook := &AsyncConsoleHook{
		out:    out,
		levels: levels,
		lines:  make(chan string, bufferSize),
		done:   make(chan struct{}),
	}
	hook.wg.Add(1)
	go hook.drain()
	return hook
}

func (h *AsyncConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	select {
	case h.lines <- line:
	default:
		h.dropped.Add(1)
	}
	return nil
}

func (h *AsyncConsoleHook) Levels() []logrus.Level {
	return h.levels
}

// Dropped reports how many entries were discarded because the buffer was full.
func (h *AsyncConsoleHook) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *AsyncConsoleHook) drain() {
	defer h.wg.Done()
	for {
		select {
		case line := <-h.lines:
			_, _ = fmt.Fprint(h.out, line)
		case <-h.done:
			for {
				select {
				case line := <-h.lines:
					_, _ = fmt.Fprint(h.out, line)
				default:
					return
				}
			}
		}
	}
}

// Close flushes buffered entries. It is safe to call more than once.
func (h *AsyncConsoleHook) Close() {
	h.once.Do(func() { close(h.done) })
	h.wg.Wait()
}
