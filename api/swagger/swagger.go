package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DriveLink Instructor API",
        "description": "Weekly availability, time-off and booking feed for driving instructors",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and token lifecycle"},
        {"name": "Availability", "description": "Weekly schedule and time-off management"},
        {"name": "Bookings", "description": "Lesson booking feed"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tokens issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "New token pair", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/schedule": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get the weekly availability schedule (always 7 entries)",
                "responses": {
                    "200": {"description": "Full week", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Replace the weekly schedule atomically",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ReplaceWeekRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replaced week", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Save already in progress", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/schedule/bulk": {
            "post": {
                "tags": ["Availability"],
                "summary": "Bulk create schedule days (legacy create-only path)",
                "responses": {
                    "201": {"description": "Created days", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/schedule/{id}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete one stored schedule day",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/time-off": {
            "get": {
                "tags": ["Availability"],
                "summary": "List time-off periods",
                "responses": {
                    "200": {"description": "Periods", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Declare a time-off period",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateTimeOffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created period", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlapping period", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/time-off/{id}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete a time-off period",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/availability/time-off/disabled-dates": {
            "get": {
                "tags": ["Availability"],
                "summary": "List calendar days already covered by time-off",
                "responses": {
                    "200": {"description": "Dates", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List the caller's lesson bookings",
                "responses": {
                    "200": {"description": "Bookings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/{id}/hide": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Hide a booking from the caller's feed",
                "responses": {
                    "204": {"description": "Hidden"}
                }
            },
            "delete": {
                "tags": ["Bookings"],
                "summary": "Restore a hidden booking",
                "responses": {
                    "204": {"description": "Restored"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ScheduleDayInput": {
            "type": "object",
            "required": ["day_of_week", "start_time", "end_time"],
            "properties": {
                "day_of_week": {"type": "string", "enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"]},
                "start_time": {"type": "string", "example": "08:00"},
                "end_time": {"type": "string", "example": "17:00"},
                "is_active": {"type": "boolean"}
            }
        },
        "ReplaceWeekRequest": {
            "type": "object",
            "required": ["schedules"],
            "properties": {
                "schedules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScheduleDayInput"}
                },
                "all_active": {"type": "boolean"}
            }
        },
        "CreateTimeOffRequest": {
            "type": "object",
            "required": ["start_date"],
            "properties": {
                "start_date": {"type": "string", "example": "2025-06-01"},
                "end_date": {"type": "string", "example": "2025-06-05"},
                "reason": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
