package telegram

import (
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/summerday/core/telegram/netutil"
)

// HTTPClientOptions tunes BuildHTTPClient. Zero values select defaults.
type HTTPClientOptions struct {
	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration
}

// BuildHTTPClient returns the client used for Bot API calls. Transient dial
// and timeout failures are retried with linear backoff.
func BuildHTTPClient(opts ...HTTPClientOptions) *http.Client {
	o := HTTPClientOptions{Timeout: 30 * time.Second, Retries: 3, RetryBackoff: 2 * time.Second}
	if len(opts) > 0 {
		if opts[0].Timeout > 0 {
			o.Timeout = opts[0].Timeout
		}
		if opts[0].Retries >= 0 {
			o.Retries = opts[0].Retries
		}
		if opts[0].RetryBackoff > 0 {
			o.RetryBackoff = opts[0].RetryBackoff
		}
	}

	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{
		Timeout:   o.Timeout,
		Transport: &retryTransport{base: base, retries: o.Retries, backoff: o.RetryBackoff},
	}
}

type retryTransport struct {
	base    http.RoundTripper
	retries int
	backoff time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	var lastErr error
	for attempt := 0; attempt <= t.retries; attempt++ {
		cur := req
		if attempt > 0 {
			// bodies can only be replayed through GetBody
			if req.Body != nil && req.GetBody == nil {
				return nil, lastErr
			}
			cur = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				cur.Body = body
			}
		}

		resp, err := base.RoundTrip(cur)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !netutil.ShouldRetry(err) || attempt == t.retries {
			break
		}
		if err := netutil.Sleep(req.Context(), t.backoff*time.Duration(attempt+1)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}
