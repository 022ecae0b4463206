// Package docs registers the OpenAPI document of the degree portal with swag.
// Regenerate with: swag init -g main.go
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
        "/api/authenticate": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["Authenticate"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "Token created successfully", "headers": {"Authorization": {"type": "string", "description": "Bearer <token>"}}, "schema": {"$ref": "#/definitions/apperror.SuccessResponse"}},
                    "401": {"description": "Missing header or bad credentials", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/api/publicUsers": {
            "post": {
                "tags": ["Users"],
                "summary": "Register",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/users.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.Identity"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/auth.Identity"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Create a user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/users.CreateUserRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.Identity"}}}
            }
        },
        "/api/users/{userID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Get a user",
                "parameters": [{"type": "string", "in": "path", "name": "userID", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Identity"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "in": "path", "name": "userID", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/users.UpdateUserRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Identity"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Delete a user",
                "parameters": [{"type": "string", "in": "path", "name": "userID", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/degreeCourses": {
            "get": {
                "tags": ["DegreeCourses"],
                "summary": "List degree courses",
                "parameters": [{"type": "string", "in": "query", "name": "universityShortName"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/degreecourses.DegreeCourse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourses"],
                "summary": "Create a degree course",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/degreecourses.CreateDegreeCourseRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/degreecourses.DegreeCourse"}}}
            }
        },
        "/api/degreeCourses/{id}": {
            "get": {
                "tags": ["DegreeCourses"],
                "summary": "Get a degree course",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/degreecourses.DegreeCourse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourses"],
                "summary": "Update a degree course",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/degreecourses.UpdateDegreeCourseRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/degreecourses.DegreeCourse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourses"],
                "summary": "Delete a degree course",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/degreeCourses/{id}/degreeCourseApplications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourses"],
                "summary": "List the applications to a degree course",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/applications.Application"}}}}
            }
        },
        "/api/degreeCourseApplications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourseApplications"],
                "summary": "Search applications",
                "parameters": [
                    {"type": "string", "in": "query", "name": "applicantUserID"},
                    {"type": "string", "in": "query", "name": "degreeCourseID"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/applications.Application"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourseApplications"],
                "summary": "Apply to a degree course",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/applications.CreateApplicationRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/applications.Application"}}}
            }
        },
        "/api/degreeCourseApplications/myApplications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourseApplications"],
                "summary": "List my applications",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/applications.Application"}}}}
            }
        },
        "/api/degreeCourseApplications/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourseApplications"],
                "summary": "Get an application",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/applications.Application"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourseApplications"],
                "summary": "Change an application",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/applications.UpdateApplicationRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/applications.Application"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["DegreeCourseApplications"],
                "summary": "Withdraw an application",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {"type": "object", "properties": {"Error": {"type": "string", "example": "Not Authorized"}}},
        "apperror.SuccessResponse": {"type": "object", "properties": {"Success": {"type": "string", "example": "Token created successfully"}}},
        "auth.Identity": {
            "type": "object",
            "properties": {
                "userID": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "isAdministrator": {"type": "boolean"}
            }
        },
        "users.CreateUserRequest": {
            "type": "object",
            "required": ["userID", "password"],
            "properties": {
                "userID": {"type": "string", "example": "alice"},
                "password": {"type": "string", "example": "pw1"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "isAdministrator": {"type": "boolean"}
            }
        },
        "users.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "isAdministrator": {"type": "boolean"}
            }
        },
        "degreecourses.DegreeCourse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "shortName": {"type": "string"},
                "universityName": {"type": "string"},
                "universityShortName": {"type": "string"},
                "departmentName": {"type": "string"},
                "departmentShortName": {"type": "string"}
            }
        },
        "degreecourses.CreateDegreeCourseRequest": {
            "type": "object",
            "required": ["name", "shortName", "universityName", "universityShortName", "departmentName", "departmentShortName"],
            "properties": {
                "name": {"type": "string"},
                "shortName": {"type": "string"},
                "universityName": {"type": "string"},
                "universityShortName": {"type": "string"},
                "departmentName": {"type": "string"},
                "departmentShortName": {"type": "string"}
            }
        },
        "degreecourses.UpdateDegreeCourseRequest": {"$ref": "#/definitions/degreecourses.CreateDegreeCourseRequest"},
        "applications.Application": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "applicantUserID": {"type": "string"},
                "degreeCourseID": {"type": "string"},
                "targetPeriodYear": {"type": "integer"},
                "targetPeriodShortName": {"type": "string", "enum": ["WiSe", "SoSe"]}
            }
        },
        "applications.CreateApplicationRequest": {
            "type": "object",
            "required": ["degreeCourseID", "targetPeriodYear", "targetPeriodShortName"],
            "properties": {
                "applicantUserID": {"type": "string"},
                "degreeCourseID": {"type": "string"},
                "targetPeriodYear": {"type": "integer"},
                "targetPeriodShortName": {"type": "string", "enum": ["WiSe", "SoSe"]}
            }
        },
        "applications.UpdateApplicationRequest": {
            "type": "object",
            "properties": {
                "applicantUserID": {"type": "string"},
                "degreeCourseID": {"type": "string"},
                "targetPeriodYear": {"type": "integer"},
                "targetPeriodShortName": {"type": "string", "enum": ["WiSe", "SoSe"]}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"},
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Degree Portal API",
	Description:      "Degree course catalog and applications with token-based authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
