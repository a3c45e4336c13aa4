package http

import (
	"time"

	"runplanner/internal/core/application/usecases/commands"
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// WorkspaceHeader names the workspace a request acts on.
const WorkspaceHeader = "X-Workspace"

func workspaceOf(c echo.Context) string {
	if ws := c.Request().Header.Get(WorkspaceHeader); ws != "" {
		return ws
	}
	return commands.DefaultWorkspace
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, invalid(name, err)
	}
	return uuidField(name, id)
}

func queryDate(c echo.Context, name string) (time.Time, error) {
	var date openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), &date); err != nil {
		return time.Time{}, invalid(name, err)
	}
	return date.Time, nil
}

func uuidField(name string, id openapi_types.UUID) (kernel.UUID, error) {
	if id == (openapi_types.UUID{}) {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	return kernel.UUIDFromBytes(id[:])
}

// optionalUUID returns a fresh id when the client did not choose one.
func optionalUUID(name string, id *openapi_types.UUID) (kernel.UUID, error) {
	if id == nil {
		return kernel.NewUUID(), nil
	}
	return uuidField(name, *id)
}

func uuidFields(name string, ids []openapi_types.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		kid, err := uuidField(name, id)
		if err != nil {
			return nil, err
		}
		out = append(out, kid)
	}
	return out, nil
}
