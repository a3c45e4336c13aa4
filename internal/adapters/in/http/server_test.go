package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	apihttp "runplanner/internal/adapters/in/http"
	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/application/usecases/queries"
	"runplanner/internal/core/application/usecases/views"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	orderID = "2f1a1f56-5b0e-4c47-9d4c-0b8f7e3b9a01"
	runID   = "7c3e4a12-8f1b-4a2d-b6c9-1d2e3f4a5b02"
	otherID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c03"
)

var planningDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func decodeError(t *testing.T, body []byte) apihttp.Error {
	t.Helper()
	var e apihttp.Error
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestAssignOrder_Created(t *testing.T) {
	f := newFixture(t)
	view := views.Assignment{
		ID:       otherID,
		OrderID:  orderID,
		RunID:    runID,
		Note:     "tail lift",
		RunLabel: "2026-03-02 Delivery AB12 CDE",
		Load:     views.Load{TotalWeight: decimal.NewFromInt(800), TotalSpaces: 12},
	}
	f.assign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignOrderCommand) bool {
		return cmd.Workspace() == "north" &&
			cmd.OrderID().String() == orderID &&
			cmd.RunID().String() == runID &&
			cmd.Note() == "tail lift"
	})).Return(view, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/assignments",
		fmt.Sprintf(`{"orderId":%q,"runId":%q,"note":"tail lift"}`, orderID, runID),
		apihttp.WorkspaceHeader, "north")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var got views.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, view.RunLabel, got.RunLabel)
	assert.True(t, got.Load.TotalWeight.Equal(decimal.NewFromInt(800)))
	f.assign.AssertExpectations(t)
}

func TestAssignOrder_DefaultWorkspace(t *testing.T) {
	f := newFixture(t)
	f.assign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignOrderCommand) bool {
		return cmd.Workspace() == commands.DefaultWorkspace
	})).Return(views.Assignment{}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/assignments", fmt.Sprintf(`{"orderId":%q,"runId":%q}`, orderID, runID))

	assert.Equal(t, http.StatusCreated, rec.Code)
	f.assign.AssertExpectations(t)
}

func TestAssignOrder_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   errs.Kind
		detail bool
	}{
		{"already assigned", errs.NewAlreadyAssignedError(orderID, otherID), http.StatusConflict, errs.KindAlreadyAssigned, true},
		{"not found", errs.NewObjectNotFoundError("order", orderID), http.StatusNotFound, errs.KindNotFound, true},
		{"invalid state", errs.NewInvalidStateError("run", "completed", "assign"), http.StatusUnprocessableEntity, errs.KindInvalidState, true},
		{"validation", errs.NewValueIsRequiredError("note"), http.StatusBadRequest, errs.KindValidation, true},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError, errs.KindInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.assign.On("Handle", mock.Anything, mock.Anything).Return(views.Assignment{}, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/assignments", fmt.Sprintf(`{"orderId":%q,"runId":%q}`, orderID, runID))

			require.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec.Body.Bytes())
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.kind, body.Kind)
			assert.NotEmpty(t, body.Message)
			if tt.detail {
				assert.Equal(t, tt.err.Error(), body.Detail)
			} else {
				assert.Empty(t, body.Detail)
			}
		})
	}
}

func TestErrorMessagesAreDistinctPerKind(t *testing.T) {
	seen := map[int]bool{}
	for _, kind := range []errs.Kind{
		errs.KindNotFound, errs.KindAlreadyAssigned, errs.KindInvalidState, errs.KindValidation, errs.KindInternal,
	} {
		status := apihttp.StatusOf(kind)
		assert.False(t, seen[status], kind)
		seen[status] = true
	}
	assert.Equal(t, http.StatusInternalServerError, apihttp.StatusOf("unknown"))
}

func TestAssignOrder_RejectedByContract(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		headers []string
	}{
		{"missing run", fmt.Sprintf(`{"orderId":%q}`, orderID), nil},
		{"note too long", fmt.Sprintf(`{"orderId":%q,"runId":%q,"note":%q}`, orderID, runID, strings.Repeat("x", 501)), nil},
		{"bad workspace", fmt.Sprintf(`{"orderId":%q,"runId":%q}`, orderID, runID), []string{apihttp.WorkspaceHeader, "north/east"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/api/v1/assignments", tt.body, tt.headers...)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, errs.KindValidation, decodeError(t, rec.Body.Bytes()).Kind)
			f.assign.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestUnassignOrder(t *testing.T) {
	f := newFixture(t)
	f.unassign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UnassignOrderCommand) bool {
		return cmd.AssignmentID().String() == otherID
	})).Return(nil).Once()

	rec := f.do(http.MethodDelete, "/api/v1/assignments/"+otherID, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.unassign.AssertExpectations(t)
}

func TestUnassignOrder_BadID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodDelete, "/api/v1/assignments/not-a-uuid", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.KindValidation, decodeError(t, rec.Body.Bytes()).Kind)
}

func TestMoveOrder(t *testing.T) {
	f := newFixture(t)
	f.move.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MoveOrderCommand) bool {
		return cmd.FromRunID().String() == runID && cmd.ToRunID().String() == otherID
	})).Return(views.Assignment{RunID: otherID}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/assignments/move",
		fmt.Sprintf(`{"orderId":%q,"fromRunId":%q,"toRunId":%q}`, orderID, runID, otherID))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f.move.AssertExpectations(t)
}

func TestMoveOrder_SameRun(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/assignments/move",
		fmt.Sprintf(`{"orderId":%q,"fromRunId":%q,"toRunId":%q}`, orderID, runID, runID))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.move.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestBulkAssignOrders(t *testing.T) {
	f := newFixture(t)
	result := views.NewBulkResult()
	result.AddSuccess()
	result.AddFailure(otherID, errs.NewAlreadyAssignedError(otherID, runID))
	f.bulkAssign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.BulkAssignOrdersCommand) bool {
		return cmd.RunID().String() == runID && len(cmd.OrderIDs()) == 2
	})).Return(result, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/runs/"+runID+"/assignments/bulk",
		fmt.Sprintf(`{"orderIds":[%q,%q]}`, orderID, otherID))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got views.BulkResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Succeeded)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, errs.KindAlreadyAssigned, got.Failures[0].Kind)
}

func TestBulkAssignOrders_EmptyList(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/runs/"+runID+"/assignments/bulk", `{"orderIds":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkUnassignAndRemove(t *testing.T) {
	f := newFixture(t)
	f.bulkUnassign.On("Handle", mock.Anything, mock.Anything).Return(views.BulkResult{Succeeded: 1}, nil).Once()
	f.bulkRemove.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.BulkRemoveOrdersCommand) bool {
		return cmd.RunID().String() == runID
	})).Return(views.BulkResult{Succeeded: 1}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/assignments/bulk-delete", fmt.Sprintf(`{"assignmentIds":[%q]}`, otherID))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/v1/runs/"+runID+"/orders/remove", fmt.Sprintf(`{"orderIds":[%q]}`, orderID))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f.bulkUnassign.AssertExpectations(t)
	f.bulkRemove.AssertExpectations(t)
}

func TestListRuns(t *testing.T) {
	f := newFixture(t)
	f.runsWithLoad.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListRunsWithLoadQuery) bool {
		return q.Date().Equal(planningDay)
	})).Return([]views.Run{{ID: runID, Label: "2026-03-02 Delivery AB12 CDE"}}, nil).Once()

	rec := f.get("/api/v1/runs?date=2026-03-02")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got []views.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-02 Delivery AB12 CDE", got[0].Label)
}

func TestListRuns_DateRequired(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/api/v1/runs", "/api/v1/orders/available"} {
		rec := f.get(target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListAvailableOrders(t *testing.T) {
	f := newFixture(t)
	f.availableOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListAvailableOrdersQuery) bool {
		return q.Date().Equal(planningDay)
	})).Return([]views.Order{{ID: orderID, Side: "delivery"}}, nil).Once()

	rec := f.get("/api/v1/orders/available?date=2026-03-02")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"side":"delivery"`)
}

func TestCreateRun(t *testing.T) {
	f := newFixture(t)
	f.createRun.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateRunCommand) bool {
		return cmd.RunID().String() == runID &&
			cmd.Date().Equal(planningDay) &&
			cmd.Type() == run.Trunking &&
			cmd.TrailerID() != nil && cmd.TrailerID().String() == otherID
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/runs", fmt.Sprintf(
		`{"id":%q,"date":"2026-03-02","type":"trunking","driverId":%q,"vehicleId":%q,"trailerId":%q}`,
		runID, kernel.NewUUID(), kernel.NewUUID(), otherID))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q}`, runID), rec.Body.String())
	f.createRun.AssertExpectations(t)
}

func TestCreateRun_MissingDriver(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/runs", fmt.Sprintf(
		`{"date":"2026-03-02","type":"delivery","vehicleId":%q}`, kernel.NewUUID()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.createRun.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	f.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Destination().Postcode().String() == "SW1A 1AA" && len(cmd.Lines()) == 1
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{
		"origin": {"name": "Leeds DC", "postcode": "LS1 4AP"},
		"destination": {"name": "Westminster", "postcode": "SW1A 1AA"},
		"lines": [{"palletType": "full", "quantity": 2, "weight": 850.5, "spaces": 2}],
		"loadingAt": "2026-03-02T06:00:00Z",
		"unloadingAt": "2026-03-02T14:00:00Z"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	f.createOrder.AssertExpectations(t)
}

func TestRegisterFleet(t *testing.T) {
	f := newFixture(t)
	f.registerFleet.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterFleetCommand) bool {
		return !cmd.IsTrailer()
	})).Return(nil).Once()
	f.registerFleet.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterFleetCommand) bool {
		return cmd.IsTrailer()
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/vehicles",
		`{"registration":"AB12 CDE","kind":"rigid","payloadWeight":1000,"palletSpaces":26}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/v1/trailers",
		`{"registration":"TRL 7","payloadWeight":24000,"palletSpaces":26}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/v1/vehicles",
		`{"registration":"AB12 CDE","kind":"van","payloadWeight":1000,"palletSpaces":26}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.registerFleet.AssertExpectations(t)
}

func TestRunLifecycle(t *testing.T) {
	f := newFixture(t)
	f.runTransition.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	f.runTransition.On("Complete", mock.Anything, mock.Anything).
		Return(errs.NewInvalidStateError("run", "planned", "complete")).Once()
	f.deleteRun.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteRunCommand) bool {
		return cmd.RunID().String() == runID
	})).Return(2, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/runs/"+runID+"/start", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/runs/"+runID+"/complete", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(http.MethodDelete, "/api/v1/runs/"+runID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"releasedOrders":2}`, rec.Body.String())

	f.runTransition.AssertExpectations(t)
	f.deleteRun.AssertExpectations(t)
}

func TestAuditConsistency(t *testing.T) {
	f := newFixture(t)
	f.audit.On("Handle", mock.Anything, mock.Anything).
		Return([]views.Inconsistency{{OrderID: orderID, Problem: "planned_without_assignment"}}, nil).Once()

	rec := f.get("/api/v1/audit")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "planned_without_assignment")
}

func TestHealthAndDocs(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	rec = f.get("/swagger/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title": "Run planner"`)
}

func TestMetricsCountOperations(t *testing.T) {
	f := newFixture(t)
	f.unassign.On("Handle", mock.Anything, mock.Anything).Return(errs.NewObjectNotFoundError("assignment", otherID)).Once()

	f.do(http.MethodDelete, "/api/v1/assignments/"+otherID, "")

	rec := f.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `runplanner_operations_total{operation="unassign",outcome="not_found"} 1`)
}
