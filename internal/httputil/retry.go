// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing the CLI installs around the
// Jira client. Retry policy lives here, in the orchestration layer; the
// retrieval loop itself never retries.
package httputil

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// RetryDoer executes requests through Client and retries on HTTP 429 (Too
// Many Requests) with exponential backoff: the delay starts at
// RetryBaseDelay and doubles each attempt.
//
// When MaxRetries is 0 the default (5) is used. On each 429 the response
// body is drained and closed before sleeping. If the request's context is
// cancelled during a backoff wait, ctx.Err() is returned. After exhausting
// retries the last 429 response is returned so the caller can inspect it.
type RetryDoer struct {
	Client     *http.Client
	MaxRetries int
}

// Do sends the request, retrying rate-limited attempts.
func (d *RetryDoer) Do(req *http.Request) (*http.Response, error) {
	maxRetries := d.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		attemptReq := req
		if attempt > 0 {
			// Rewind the body for re-sends. Requests built from an
			// in-memory reader always carry GetBody.
			attemptReq = req.Clone(ctx)
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("rewinding request body: %w", err)
				}
				attemptReq.Body = body
			}
		}

		resp, err := d.Client.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries: return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
