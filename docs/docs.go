// Package docs contiene la especificación OpenAPI servida en /docs.
package docs

import _ "embed"

// SwaggerJSON especificación OpenAPI 2.0 de la API.
//
//go:embed swagger.json
var SwaggerJSON []byte
