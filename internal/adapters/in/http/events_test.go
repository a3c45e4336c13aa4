package http_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEvents(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.echo)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/workspaces/north/events", nil)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	reader := bufio.NewReader(res.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)
	require.Equal(t, 1, f.hub.Subscribers("north"))

	require.NoError(t, f.hub.Publish(ctx, "south"))
	require.NoError(t, f.hub.Publish(ctx, "north"))

	var event string
	for event == "" {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		}
	}
	assert.Equal(t, "refresh", event)

	cancel()
	assert.Eventually(t, func() bool {
		return f.hub.Subscribers("north") == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestStreamEvents_InvalidWorkspace(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/api/v1/workspaces/north.east/events")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
