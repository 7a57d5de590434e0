package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("bad request"), false},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), false},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"read timeout", &net.OpError{Op: "read", Err: timeoutErr{}}, true},
		{"url timeout", &url.Error{Op: "Post", URL: "https://api.telegram.org", Err: timeoutErr{}}, true},
		{"dns temporary", &net.DNSError{IsTemporary: true}, true},
		{"dns not found", &net.DNSError{IsNotFound: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRetry(tt.err))
		})
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}
