package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Marks API",
        "description": "Student exam marks administration and result lookup",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Admin", "description": "Mark entry and browsing, admin token required"},
        {"name": "Authentication", "description": "Admin login"},
        {"name": "Results", "description": "Public result lookup and report cards"},
        {"name": "Health", "description": "Liveness"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthStatus"}}
                }
            }
        },
        "/exam-types": {
            "get": {
                "tags": ["Results"],
                "summary": "Accepted exam types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Exchange the admin password for a bearer token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AdminLoginResponse"}},
                    "401": {"description": "Invalid password", "schema": {"$ref": "#/definitions/AdminLoginResponse"}}
                }
            }
        },
        "/admin/add-mark": {
            "post": {
                "tags": ["Admin"],
                "summary": "Add student marks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation or duplicate", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/update-mark/{id}": {
            "put": {
                "tags": ["Admin"],
                "summary": "Update student marks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/all-marks": {
            "get": {
                "tags": ["Admin"],
                "summary": "List every record, most recently updated first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/StudentMark"}}}
                }
            }
        },
        "/admin/marks/{id}": {
            "get": {
                "tags": ["Admin"],
                "summary": "Load a record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/browse": {
            "get": {
                "tags": ["Admin"],
                "summary": "Filter by class and page through records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/classes": {
            "get": {
                "tags": ["Admin"],
                "summary": "Records grouped by class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/export.csv": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export all marks as CSV",
                "produces": ["text/csv"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/user/check-mark": {
            "post": {
                "tags": ["Results"],
                "summary": "Look up results by register number",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckMarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CheckMarkResponse"}},
                    "400": {"description": "Register number missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/report": {
            "post": {
                "tags": ["Results"],
                "summary": "Report cards with grades and totals",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckMarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/user/report.pdf": {
            "post": {
                "tags": ["Results"],
                "summary": "Download report cards as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckMarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "PDF file"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Subject": {
            "type": "object",
            "properties": {
                "subjectName": {"type": "string"},
                "mark": {"type": "number"}
            }
        },
        "StudentMark": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "fatherName": {"type": "string"},
                "registerNumber": {"type": "string"},
                "className": {"type": "string"},
                "examType": {"type": "string", "enum": ["Internal / Series Exam", "Model Exam", "Semester / Final Exam"]},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/Subject"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "MarkRequest": {
            "type": "object",
            "required": ["name", "registerNumber", "className", "examType"],
            "properties": {
                "name": {"type": "string"},
                "fatherName": {"type": "string"},
                "registerNumber": {"type": "string"},
                "className": {"type": "string"},
                "examType": {"type": "string"},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/Subject"}}
            }
        },
        "CheckMarkRequest": {
            "type": "object",
            "required": ["registerNumber"],
            "properties": {
                "registerNumber": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "CheckMarkResponse": {
            "type": "object",
            "properties": {
                "found": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/StudentMark"}},
                "message": {"type": "string"}
            }
        },
        "AdminLoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
            }
        },
        "AdminLoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string", "format": "date-time"},
                "message": {"type": "string"}
            }
        },
        "HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"type": "string", "enum": ["connected", "disconnected"]},
                "cache": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
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
