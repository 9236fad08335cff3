package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIAKAD Enrollment API",
        "description": "Course enrollment, transcript and grade service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Enrollments", "description": "Class registration and audit trail"},
        {"name": "Transcripts", "description": "Derived transcript and GPA"},
        {"name": "Grades", "description": "Grade entry on enrollment records"}
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
        "/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Register a student into a class section",
                "responses": {
                    "201": {"description": "Registered"},
                    "409": {"description": "Semester closed or class full"},
                    "422": {"description": "Prerequisites not met"}
                }
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Cancel an active enrollment",
                "responses": {
                    "204": {"description": "Cancelled"},
                    "404": {"description": "No active enrollment"},
                    "409": {"description": "Semester already started"}
                }
            }
        },
        "/semesters/{id}/enrollment-history": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List the enrollment audit trail of a semester",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/students/{id}/transcript": {
            "get": {
                "tags": ["Transcripts"],
                "summary": "Get a student's transcript",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/grades": {
            "put": {
                "tags": ["Grades"],
                "summary": "Write a grade onto an enrollment record",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No enrollment for student and course"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "SIAKAD Enrollment API",
	Description:      "Course enrollment, transcript and grade service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
