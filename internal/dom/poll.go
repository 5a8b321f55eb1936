package dom

import (
	"context"
	"fmt"
	"time"
)

// WaitFor polls the document until the selector resolves. There is no retry
// cap: an indefinitely missing element polls until ctx is cancelled, so the
// caller's context is the disposal handle for the whole discovery.
func WaitFor(ctx context.Context, doc Document, selector string, interval time.Duration) (Element, error) {
	if el, ok := doc.Query(selector); ok {
		return el, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for element '%s': %w", selector, ctx.Err())
		case <-ticker.C:
			if el, ok := doc.Query(selector); ok {
				return el, nil
			}
		}
	}
}
