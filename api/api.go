// Package api embeds the OpenAPI document of the planner HTTP API. The same
// document validates requests and backs the Swagger UI.
package api

import (
	_ "embed"
)

//go:embed openapi.json
var Document []byte
