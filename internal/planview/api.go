package planview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/pkg/errs"
)

const workspaceHeader = "X-Workspace"

// APIError is a failed call as reported by the server.
type APIError struct {
	Status  int       `json:"code"`
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
	Detail  string    `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Unwrap lets callers test the kind with errors.Is against the errs sentinels.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case errs.KindNotFound:
		return errs.ErrObjectNotFound
	case errs.KindAlreadyAssigned:
		return errs.ErrAlreadyAssigned
	case errs.KindInvalidState:
		return errs.ErrInvalidState
	case errs.KindValidation:
		return errs.ErrValueIsInvalid
	default:
		return nil
	}
}

// HTTPAPI calls the planner's HTTP API on behalf of one workspace.
type HTTPAPI struct {
	baseURL   string
	workspace string
	client    *http.Client
}

// NewHTTPAPI creates a client. A nil client uses http.DefaultClient.
func NewHTTPAPI(baseURL, workspace string, client *http.Client) *HTTPAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAPI{
		baseURL:   strings.TrimRight(baseURL, "/"),
		workspace: workspace,
		client:    client,
	}
}

func (a *HTTPAPI) AvailableOrders(ctx context.Context, date time.Time) ([]views.Order, error) {
	var out []views.Order
	err := a.do(ctx, http.MethodGet, "/api/v1/orders/available?date="+url.QueryEscape(date.Format(time.DateOnly)), nil, &out)
	return out, err
}

func (a *HTTPAPI) Runs(ctx context.Context, date time.Time) ([]views.Run, error) {
	var out []views.Run
	err := a.do(ctx, http.MethodGet, "/api/v1/runs?date="+url.QueryEscape(date.Format(time.DateOnly)), nil, &out)
	return out, err
}

func (a *HTTPAPI) Assign(ctx context.Context, orderID, runID, note string) (views.Assignment, error) {
	var out views.Assignment
	body := map[string]string{"orderId": orderID, "runId": runID}
	if note != "" {
		body["note"] = note
	}
	err := a.do(ctx, http.MethodPost, "/api/v1/assignments", body, &out)
	return out, err
}

func (a *HTTPAPI) Unassign(ctx context.Context, assignmentID string) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/assignments/"+url.PathEscape(assignmentID), nil, nil)
}

func (a *HTTPAPI) Move(ctx context.Context, orderID, fromRunID, toRunID string) (views.Assignment, error) {
	var out views.Assignment
	body := map[string]string{"orderId": orderID, "fromRunId": fromRunID, "toRunId": toRunID}
	err := a.do(ctx, http.MethodPost, "/api/v1/assignments/move", body, &out)
	return out, err
}

func (a *HTTPAPI) BulkAssign(ctx context.Context, runID string, orderIDs []string) (views.BulkResult, error) {
	var out views.BulkResult
	body := map[string][]string{"orderIds": orderIDs}
	err := a.do(ctx, http.MethodPost, "/api/v1/runs/"+url.PathEscape(runID)+"/assignments/bulk", body, &out)
	return out, err
}

func (a *HTTPAPI) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(workspaceHeader, a.workspace)
	return req, nil
}

func (a *HTTPAPI) do(ctx context.Context, method, path string, body, out any) error {
	req, err := a.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	res, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{}
	if err := json.NewDecoder(res.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
		apiErr = &APIError{Kind: errs.KindInternal, Message: res.Status}
	}
	apiErr.Status = res.StatusCode
	return apiErr
}
