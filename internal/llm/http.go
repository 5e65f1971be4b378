package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const maxErrorBody = 512

// statusError maps a non-200 backend status onto the error taxonomy.
func statusError(backend string, status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s returned status %d: %s", ErrRateLimited, backend, status, string(body))
	}
	return fmt.Errorf("%w: %s returned status %d: %s", ErrUpstream, backend, status, string(body))
}

// transportError classifies a failure that happened before a status was read.
func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// probe issues a short GET and reports whether it answered 200.
func probe(ctx context.Context, client *http.Client, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
