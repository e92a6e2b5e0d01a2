package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Scheduling API",
        "description": "Classroom ledgers, schedule conflict checking and exam booking",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classrooms", "description": "Classroom registry and direct allocation"},
        {"name": "Schedules", "description": "Course schedule assignment and rescheduling"},
        {"name": "Exams", "description": "Exam booking and results"},
        {"name": "Directory", "description": "Courses, professors and students"},
        {"name": "Auth", "description": "Token issuance"},
        {"name": "Audit", "description": "Booking event history"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms with ledger summaries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classrooms"],
                "summary": "Register classroom",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassroomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{id}": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Get classroom",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/classrooms/{id}/allocate": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Allocate classroom for a date and time slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AllocateClassroomRequest"}}
                ],
                "responses": {
                    "204": {"description": "Allocated"},
                    "409": {"description": "Slot already taken"}
                }
            }
        },
        "/classrooms/{id}/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules by classroom",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{id}/bookings": {
            "get": {
                "tags": ["Audit"],
                "summary": "List booking events for a classroom",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Assign schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Classroom or professor conflict"}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "tags": ["Schedules"],
                "summary": "Reschedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Target slot conflicts"}
                }
            }
        },
        "/professors/{id}/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules by professor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams": {
            "post": {
                "tags": ["Exams"],
                "summary": "Schedule exam",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Classroom slot taken"}
                }
            }
        },
        "/exams/{id}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Get exam details with result statistics",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/exams/{id}/results": {
            "post": {
                "tags": ["Exams"],
                "summary": "Record exam result",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordResultRequest"}}
                ],
                "responses": {
                    "204": {"description": "Recorded"},
                    "409": {"description": "Result already recorded"}
                }
            }
        },
        "/exams/{id}/results/export": {
            "get": {
                "tags": ["Exams"],
                "summary": "Export exam results as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Directory"],
                "summary": "List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Directory"],
                "summary": "Register course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exams for a course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/professors": {
            "get": {
                "tags": ["Directory"],
                "summary": "List professors",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Directory"],
                "summary": "Register professor",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Directory"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Directory"],
                "summary": "Register student",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue tokens",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke a refresh token",
                "responses": {
                    "204": {"description": "Revoked"}
                }
            }
        }
    },
    "definitions": {
        "CreateClassroomRequest": {
            "type": "object",
            "properties": {
                "classroom_id": {"type": "string"},
                "location": {"type": "string"},
                "capacity": {"type": "integer"}
            },
            "required": ["classroom_id", "capacity"]
        },
        "AllocateClassroomRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-09-14"},
                "time_slot": {"type": "string", "example": "10:00-11:00"}
            },
            "required": ["date", "time_slot"]
        },
        "CreateScheduleRequest": {
            "type": "object",
            "properties": {
                "schedule_id": {"type": "string"},
                "course_id": {"type": "string"},
                "professor_id": {"type": "string"},
                "classroom_id": {"type": "string"},
                "date": {"type": "string", "example": "2026-09-14"},
                "time_slot": {"type": "string", "example": "10:00-11:00"}
            },
            "required": ["course_id", "professor_id", "classroom_id", "date", "time_slot"]
        },
        "UpdateScheduleRequest": {
            "type": "object",
            "properties": {
                "time_slot": {"type": "string"},
                "classroom_id": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "ScheduleExamRequest": {
            "type": "object",
            "properties": {
                "exam_id": {"type": "string"},
                "course_id": {"type": "string"},
                "date": {"type": "string", "example": "2026-09-14"},
                "duration_minutes": {"type": "integer", "example": 90},
                "classroom_id": {"type": "string"}
            },
            "required": ["course_id", "date", "duration_minutes", "classroom_id"]
        },
        "RecordResultRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "grade": {"type": "string"}
            },
            "required": ["student_id", "grade"]
        },
        "CreateCourseRequest": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"},
                "name": {"type": "string"},
                "credits": {"type": "integer"}
            },
            "required": ["name"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
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
