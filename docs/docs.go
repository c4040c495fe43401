// Package docs registers the sigd OpenAPI document with swag. Regenerate with
// `swag init -g cmd/sigd/docs.go -o docs` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/targets/{target}/signals/{signal}/emit": {
            "post": {
                "description": "Invokes every listener registered for the signal under the target, in registration order.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["signals"],
                "summary": "Emit a signal",
                "parameters": [
                    {"type": "string", "description": "Target id", "name": "target", "in": "path", "required": true},
                    {"type": "string", "description": "Signal name", "name": "signal", "in": "path", "required": true},
                    {"type": "string", "description": "strict (default) or best_effort", "name": "policy", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.EmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.EmitResponse": {
            "type": "object",
            "properties": {
                "matched": {"type": "integer", "example": 1},
                "policy": {"type": "string", "example": "strict"},
                "signal": {"type": "string", "example": "deleted"},
                "suggestion": {"type": "string", "example": "deleted"},
                "target": {"type": "string", "example": "users"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "error": {"type": "string", "example": "invalid JSON body"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "sigd API",
	Description:      "Introspection and admin API for the in-process signal registry.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
