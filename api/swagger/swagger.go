package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Records API",
        "description": "Course registration, grading and academic records backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login and token issuance"},
        {"name": "Student", "description": "Registration, timetable, records, re-evaluations"},
        {"name": "Faculty", "description": "Marks, attendance, rosters, materials"},
        {"name": "Admin", "description": "Accounts, catalog, re-evaluation decisions"},
        {"name": "Parent", "description": "Read-only view of the linked student"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/register": {
            "post": {
                "tags": ["Student"],
                "summary": "Register for a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Full, duplicate, slot clash or credit limit", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/classes": {
            "get": {
                "tags": ["Student"],
                "summary": "List open classes",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/timetable": {
            "get": {
                "tags": ["Student"],
                "summary": "Get weekly timetable",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/records": {
            "get": {
                "tags": ["Student"],
                "summary": "Get academic records",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/reevaluations": {
            "post": {
                "tags": ["Student"],
                "summary": "Request a grade re-evaluation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitReevaluationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate pending request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/courses/{code}/materials": {
            "get": {
                "tags": ["Student"],
                "summary": "List course materials",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/marks": {
            "post": {
                "tags": ["Faculty"],
                "summary": "Upload marks for a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WriteMarksRequest"}}
                ],
                "responses": {
                    "200": {"description": "Grade written", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Grade locked or not your class", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/attendance": {
            "post": {
                "tags": ["Faculty"],
                "summary": "Record an attendance session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not your class", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/classes/{id}/roster": {
            "get": {
                "tags": ["Faculty"],
                "summary": "Get a class roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/classes/{id}/roster/export": {
            "get": {
                "tags": ["Faculty"],
                "summary": "Export a class roster",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/faculty/courses/{code}/materials": {
            "post": {
                "tags": ["Faculty"],
                "summary": "Share a course material",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"},
                    {"name": "title", "in": "formData", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/users": {
            "post": {
                "tags": ["Admin"],
                "summary": "Provision an account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/courses": {
            "post": {
                "tags": ["Admin"],
                "summary": "Add a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate course code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/classes": {
            "post": {
                "tags": ["Admin"],
                "summary": "Open a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpenClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Faculty slot clash", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reevaluations": {
            "get": {
                "tags": ["Admin"],
                "summary": "List pending re-evaluation requests",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reevaluations/decide": {
            "post": {
                "tags": ["Admin"],
                "summary": "Decide a re-evaluation request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecideReevaluationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Decided", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already decided", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/parent/records": {
            "get": {
                "tags": ["Parent"],
                "summary": "Get the linked student's academic records",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/parent/timetable": {
            "get": {
                "tags": ["Parent"],
                "summary": "Get the linked student's weekly timetable",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["class_id"],
            "properties": {
                "class_id": {"type": "string"}
            }
        },
        "SubmitReevaluationRequest": {
            "type": "object",
            "required": ["class_id", "reason"],
            "properties": {
                "class_id": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "DecideReevaluationRequest": {
            "type": "object",
            "required": ["request_id", "outcome"],
            "properties": {
                "request_id": {"type": "string"},
                "outcome": {"type": "string", "enum": ["approved", "rejected"]}
            }
        },
        "WriteMarksRequest": {
            "type": "object",
            "required": ["student_id", "class_id", "marks"],
            "properties": {
                "student_id": {"type": "string"},
                "class_id": {"type": "string"},
                "marks": {"type": "number", "minimum": 0, "maximum": 100}
            }
        },
        "RecordAttendanceRequest": {
            "type": "object",
            "required": ["class_id"],
            "properties": {
                "class_id": {"type": "string"},
                "absent_student_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["username", "password", "full_name", "role"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "faculty", "student", "parent"]},
                "child_student_id": {"type": "string"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["code", "name", "credits"],
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "credits": {"type": "integer", "minimum": 1, "maximum": 27}
            }
        },
        "OpenClassRequest": {
            "type": "object",
            "required": ["course_code", "faculty_id", "slot", "total_seats"],
            "properties": {
                "course_code": {"type": "string"},
                "faculty_id": {"type": "string"},
                "slot": {"type": "string"},
                "total_seats": {"type": "integer", "minimum": 1}
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
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"},
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
