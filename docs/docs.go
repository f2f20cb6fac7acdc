// Package docs registers the OpenAPI document served under /swagger.
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
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "List expense categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/expense": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Add an expense",
                "parameters": [
                    {
                        "description": "Expense",
                        "name": "expense",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.CreateExpenseInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createExpenseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/expenses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "List all expenses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Expense"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/expenses/month": {
            "get": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "List expenses of a calendar month",
                "parameters": [
                    {"type": "string", "description": "Full English month name, e.g. March", "name": "month", "in": "query", "required": true},
                    {"type": "integer", "description": "Year, defaults to the current year", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Expense"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/expenses/month/export": {
            "post": {
                "description": "Uploads the report to object storage and returns a presigned download URL.",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Export a month of expenses as CSV",
                "parameters": [
                    {"type": "string", "description": "Full English month name", "name": "month", "in": "query", "required": true},
                    {"type": "integer", "description": "Year, defaults to the current year", "name": "year", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.ReportResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.createExpenseResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "model.Expense": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "service.CreateExpenseInput": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "name": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "service.ReportResult": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "key": {"type": "string"},
                "url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Expense API",
	Description:      "Records expenses and lists them by calendar month.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
