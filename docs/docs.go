// Package docs registers the swagger document served on /swagger.
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
        "/api/properties": {
            "get": {
                "tags": ["public"],
                "summary": "Browse published properties",
                "parameters": [
                    {"type": "string", "name": "city", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "gender", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a student",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Student login by email or phone",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/vendor-properties": {
            "post": {
                "tags": ["vendor"],
                "summary": "Create a property (starts as draft)",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/vendor-properties/{id}/rooms": {
            "post": {
                "tags": ["vendor"],
                "summary": "Add a room; beds are generated from totalBeds",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/vendor-properties/{id}/beds/{roomId}/{bedId}": {
            "patch": {
                "tags": ["vendor"],
                "summary": "Switch a bed to available, maintenance or notice",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/booking": {
            "post": {
                "tags": ["bookings"],
                "summary": "Admin booking; the bed becomes occupied",
                "responses": {"201": {"description": "Created"}, "400": {"description": "validation or bed not available"}}
            }
        },
        "/api/frontend/booking": {
            "post": {
                "tags": ["bookings"],
                "summary": "Student booking request; the bed is held (onbook)",
                "responses": {"201": {"description": "Created"}, "401": {"description": "student must login first"}}
            }
        },
        "/api/admin/payments": {
            "post": {
                "tags": ["payments"],
                "summary": "Record a credit or debit; debits need enough balance",
                "responses": {"201": {"description": "Created"}, "400": {"description": "insufficient balance"}}
            }
        },
        "/api/admin/vendors": {
            "post": {
                "tags": ["admin"],
                "summary": "Create a vendor account and mail its credentials",
                "responses": {"201": {"description": "Created"}}
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
	Title:            "StayHub API",
	Description:      "Hostel and PG marketplace: properties, rooms, beds, bookings and wallets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
