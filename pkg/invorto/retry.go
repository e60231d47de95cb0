package invorto

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

type temporaryError interface {
	Temporary() bool
}

// attemptWithRetry re-issues an exchange with exponential backoff while the
// failure reports itself as temporary (429, 5xx, timeouts). Anything else,
// including validation problems and 4xx rejections, is surfaced immediately.
func (c *Client) attemptWithRetry(ctx context.Context, method, p string, query map[string]string, body any, expectJSON bool) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.retryMax

	var result []byte
	operation := func() error {
		payload, err := c.attempt(ctx, method, p, query, body, expectJSON)
		if err != nil {
			if te, ok := err.(temporaryError); ok && te.Temporary() {
				return err
			}
			return backoff.Permanent(err)
		}
		result = payload
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return result, nil
}
