package sender

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	tele "gopkg.in/telebot.v4"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})
	var n atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
			n.Add(1)
			return nil
		}))
	}
	d.Close()
	assert.Equal(t, int32(5), n.Load())
	assert.Equal(t, uint64(5), d.Sent())
	assert.Zero(t, d.ErrorCount())
}

func TestDispatcherRetriesTransientErrors(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})
	var calls atomic.Int32
	require.NoError(t, d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		if calls.Add(1) < 3 {
			return &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}
		return nil
	}))
	d.Close()
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, uint64(1), d.Sent())
}

func TestDispatcherDoesNotRetryAPIErrors(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 3, RetryBackoff: time.Millisecond})
	var calls atomic.Int32
	require.NoError(t, d.Enqueue(context.Background(), "edit.markup", "editMessageReplyMarkup", func() error {
		calls.Add(1)
		return tele.ErrMessageNotModified
	}))
	d.Close()
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, uint64(1), d.ErrorCount())
}

func TestDispatcherQueueFullAndClosed(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, d.Enqueue(context.Background(), "a", "", func() error {
		close(started)
		<-release
		return nil
	}))
	<-started
	require.NoError(t, d.Enqueue(context.Background(), "b", "", func() error { return nil }))
	assert.ErrorIs(t, d.Enqueue(context.Background(), "c", "", func() error { return nil }), ErrQueueFull)

	close(release)
	d.Close()
	d.Close()
	assert.ErrorIs(t, d.Enqueue(context.Background(), "d", "", func() error { return nil }), ErrQueueClosed)
	assert.Error(t, d.Enqueue(context.Background(), "e", "", nil))
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, "", classifyError(nil))
	assert.Equal(t, "timeout", classifyError(context.DeadlineExceeded))
	assert.Equal(t, "dns", classifyError(&net.DNSError{Err: "no such host"}))
	assert.Equal(t, "dial", classifyError(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.Equal(t, "http_4xx", classifyError(tele.ErrMessageNotModified))
	assert.Equal(t, "flood", classifyError(tele.FloodError{RetryAfter: 3}))
	assert.Equal(t, "unknown", classifyError(errors.New("odd")))
}

func TestRedact(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:AAbb-cc_DD/sendMessage": EOF`)
	assert.Equal(t, `Post "https://api.telegram.org/bot<redacted>/sendMessage": EOF`, redact(err))
}
