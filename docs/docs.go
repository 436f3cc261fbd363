// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/intents/classify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Intents"],
                "summary": "Classify a query",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/classifyReq"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Empty query", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "503": {"description": "Router not ready", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "504": {"description": "Classification timed out", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/intents/classify/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Intents"],
                "summary": "Classify several queries against one index version",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/classifyBatchReq"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/intents/sync": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Intents"],
                "summary": "Reconcile the reference index with the registry",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "502": {"description": "Sync failed", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/intents/routes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Intents"],
                "summary": "List the current route registry",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Intents"],
                "summary": "Replace the route registry and sync",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/routesReq"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Invalid registry", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/intents/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Intents"],
                "summary": "Serving state of the router",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        },
        "/api/v1/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Answer a customer query",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/chatReq"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Empty query", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/chat/routes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Routes that have an answerer",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        },
        "/webhook/telegram": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Telegram bot webhook",
                "responses": {
                    "200": {"description": "Accepted", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "401": {"description": "Bad secret token", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "API is healthy", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "API is ready", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "503": {"description": "Router not ready", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "API is alive", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        }
    },
    "definitions": {
        "classifyReq": {
            "type": "object",
            "required": ["query"],
            "properties": {"query": {"type": "string"}}
        },
        "classifyBatchReq": {
            "type": "object",
            "required": ["queries"],
            "properties": {"queries": {"type": "array", "items": {"type": "string"}}}
        },
        "routesReq": {
            "type": "object",
            "required": ["routes"],
            "properties": {
                "routes": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "name": {"type": "string"},
                            "utterances": {"type": "array", "items": {"type": "string"}},
                            "threshold": {"type": "number"}
                        }
                    }
                }
            }
        },
        "chatReq": {
            "type": "object",
            "required": ["query"],
            "properties": {"query": {"type": "string"}, "user_id": {"type": "string"}}
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Intent Router API",
	Description:      "Semantic intent routing over embedded example utterances, with FAQ and catalog answerers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
