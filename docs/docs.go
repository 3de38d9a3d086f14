// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/api/v1/policies": {
            "get": {
                "description": "Returns every registered category policy",
                "produces": ["application/json"],
                "tags": ["Rate Limit"],
                "summary": "List policies",
                "parameters": [
                    {"type": "string", "description": "Authorization token", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "Registered policies", "schema": {"$ref": "#/definitions/response.ListPoliciesOutput"}}
                }
            }
        },
        "/api/v1/ratelimit/{category}/subjects/{subject}": {
            "get": {
                "description": "Returns the current window count, violation count and active block for a subject",
                "produces": ["application/json"],
                "tags": ["Rate Limit"],
                "summary": "Get subject status",
                "parameters": [
                    {"type": "string", "description": "Authorization token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "Category", "name": "category", "in": "path", "required": true},
                    {"type": "string", "description": "Subject as \u003ckind\u003e:\u003cvalue\u003e", "name": "subject", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Subject status", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Category not registered", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Store unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "delete": {
                "description": "Removes the current window counter and any active block for a subject. Violation history is kept.",
                "produces": ["application/json"],
                "tags": ["Rate Limit"],
                "summary": "Clear a subject",
                "parameters": [
                    {"type": "string", "description": "Authorization token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "Category", "name": "category", "in": "path", "required": true},
                    {"type": "string", "description": "Subject as \u003ckind\u003e:\u003cvalue\u003e", "name": "subject", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Subject cleared", "schema": {"$ref": "#/definitions/response.ClearOutput"}},
                    "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Category not registered", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Store unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service is up", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/v1/check": {
            "post": {
                "description": "Counts one attempt for the caller in the given category and reports whether it may proceed",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Rate Limit"],
                "summary": "Check a rate limit",
                "parameters": [
                    {"description": "Check request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.CheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "Attempt allowed", "schema": {"$ref": "#/definitions/response.CheckOutput"}},
                    "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": true}},
                    "429": {"description": "Attempt denied", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Limiter misconfigured", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the running build of the service",
                "produces": ["application/json"],
                "tags": ["Version"],
                "summary": "Get TrustGuard version",
                "responses": {
                    "200": {"description": "Version information", "schema": {"$ref": "#/definitions/version.Info"}}
                }
            }
        }
    },
    "definitions": {
        "request.CheckRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "network_address": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "response.CheckOutput": {
            "type": "object",
            "properties": {
                "allowed": {"type": "boolean"},
                "category": {"type": "string"},
                "current_count": {"type": "integer"},
                "failed_open": {"type": "boolean"},
                "limit": {"type": "integer"},
                "remaining": {"type": "integer"},
                "window_reset_at": {"type": "string"}
            }
        },
        "response.ClearOutput": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "cleared": {"type": "boolean"},
                "subject": {"type": "string"}
            }
        },
        "response.ListPoliciesOutput": {
            "type": "object",
            "properties": {
                "policies": {"type": "array", "items": {"$ref": "#/definitions/ratelimit.Policy"}}
            }
        },
        "ratelimit.Policy": {
            "type": "object",
            "properties": {
                "block_seconds": {"type": "integer"},
                "category": {"type": "string"},
                "max_requests": {"type": "integer"},
                "progressive": {"type": "boolean"},
                "window_seconds": {"type": "integer"}
            }
        },
        "version.Info": {
            "type": "object",
            "properties": {
                "app_name": {"type": "string"},
                "build_date": {"type": "string"},
                "go_version": {"type": "string"},
                "platform": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TrustGuard API",
	Description:      "Rate limiting and abuse protection service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
