package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StreamEvents handles GET /api/v1/workspaces/{workspace}/events. Each
// refresh signal of the workspace becomes an "event: refresh" message; comment
// lines keep idle connections open through proxies.
func (s *Server) StreamEvents(c echo.Context) error {
	workspace := c.Param("workspace")
	signals, cancel := s.subscriber.Subscribe(workspace)
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeEvent(res, ": connected\n\n"); err != nil {
		return nil
	}

	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		var frame string
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			frame = "event: refresh\ndata: {}\n\n"
		case <-ticker.C:
			frame = ": keep-alive\n\n"
		}
		if err := writeEvent(res, frame); err != nil {
			s.logger.DebugContext(ctx, "event stream closed", "workspace", workspace, "error", err)
			return nil
		}
	}
}

func writeEvent(res *echo.Response, frame string) error {
	if _, err := fmt.Fprint(res, frame); err != nil {
		return err
	}
	res.Flush()
	return nil
}
