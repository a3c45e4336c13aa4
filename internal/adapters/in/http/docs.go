package http

import (
	"sync"

	"runplanner/api"

	"github.com/swaggo/swag"
)

type apiDocument struct{}

func (apiDocument) ReadDoc() string {
	return string(api.Document)
}

var registerDocOnce sync.Once

// registerDoc serves the embedded document at /swagger/doc.json. swag panics
// on a second registration under the same name.
func registerDoc() {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, apiDocument{})
	})
}
