package planview

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Events opens the workspace's refresh stream. The returned channel carries
// one value per refresh event, coalescing bursts, and is closed when the
// stream ends or ctx is cancelled.
func (a *HTTPAPI) Events(ctx context.Context) (<-chan struct{}, error) {
	req, err := a.newRequest(ctx, http.MethodGet, "/api/v1/workspaces/"+url.PathEscape(a.workspace)+"/events", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	res, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		defer res.Body.Close()
		return nil, decodeError(res)
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer close(signals)
		defer res.Body.Close()

		scanner := bufio.NewScanner(res.Body)
		for scanner.Scan() {
			event, ok := strings.CutPrefix(scanner.Text(), "event:")
			if !ok || strings.TrimSpace(event) != "refresh" {
				continue
			}
			select {
			case signals <- struct{}{}:
			default:
			}
		}
	}()
	return signals, nil
}
