package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

var errWriterClosed = errors.New("logger: writer closed")

// asyncWriter serialises log lines through a single goroutine that fans
// them out to buffered sinks, so handlers never block on slow files.
type asyncWriter struct {
	lines   chan []byte
	flushes chan chan error
	done    chan struct{}

	gate   sync.RWMutex
	closed bool

	mu    sync.Mutex
	sinks []*bufio.Writer
	err   error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	w := &asyncWriter{
		lines:   make(chan []byte, 256),
		flushes: make(chan chan error),
		done:    make(chan struct{}),
	}
	for _, out := range writers {
		if out != nil {
			w.sinks = append(w.sinks, bufio.NewWriterSize(out, bufSize))
		}
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	defer close(w.done)
	for {
		select {
		case line, ok := <-w.lines:
			if !ok {
				_ = w.flushSinks()
				return
			}
			w.record(w.writeLine(line))
		case ack := <-w.flushes:
			ack <- w.flushSinks()
		}
	}
}

// Put queues a copy of line. When the queue is full it blocks rather than
// dropping the record.
func (w *asyncWriter) Put(line []byte) error {
	if err := w.firstErr(); err != nil {
		return err
	}
	if len(line) == 0 {
		return nil
	}
	w.gate.RLock()
	defer w.gate.RUnlock()
	if w.closed {
		return errWriterClosed
	}
	w.lines <- append([]byte(nil), line...)
	return nil
}

// Flush waits until everything queued before the call reached the sinks.
func (w *asyncWriter) Flush() error {
	if err := w.firstErr(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	select {
	case w.flushes <- ack:
		return <-ack
	case <-w.done:
		return w.firstErr()
	}
}

// Close drains the queue, stops the goroutine and returns the first write error.
func (w *asyncWriter) Close() error {
	w.gate.Lock()
	if !w.closed {
		w.closed = true
		close(w.lines)
	}
	w.gate.Unlock()
	<-w.done
	return w.firstErr()
}

func (w *asyncWriter) writeLine(p []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.sinks {
		if _, err := s.Write(p); err != nil {
			return err
		}
		if err := s.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (w *asyncWriter) flushSinks() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, s := range w.sinks {
		if err := s.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) firstErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *asyncWriter) record(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}
