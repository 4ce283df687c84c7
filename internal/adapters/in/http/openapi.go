package http

import (
	_ "embed"
	"sync"

	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPIDocument returns the OpenAPI 3 description of the API.
func OpenAPIDocument() []byte {
	doc := make([]byte, len(openAPIDocument))
	copy(doc, openAPIDocument)
	return doc
}

var registerDocOnce sync.Once

// registerSwaggerDoc makes the document available to the swagger UI handler.
// swag panics on duplicate registration, hence the once.
func registerSwaggerDoc() {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Title:            "Storefront API",
			Version:          "1.0.0",
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(openAPIDocument),
		})
	})
}
