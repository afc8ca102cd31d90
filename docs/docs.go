// Package docs registers the OpenAPI description of the local surface.
// Regenerate with: swag init -g cmd/taskdesk/main.go
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
        "/login": {"post": {"tags": ["Auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/signup": {"post": {"tags": ["Auth"], "summary": "Create an account", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/logout": {"post": {"tags": ["Auth"], "summary": "Log out", "responses": {"200": {"description": "OK"}}}},
        "/status": {"get": {"tags": ["Status"], "summary": "Busy flag and session state", "responses": {"200": {"description": "OK"}}}},
        "/admin/dashboard": {"get": {"tags": ["Dashboard"], "summary": "Landing page of the logged in role", "responses": {"200": {"description": "OK"}}}},
        "/user/dashboard": {"get": {"tags": ["Dashboard"], "summary": "Landing page of the logged in role", "responses": {"200": {"description": "OK"}}}},
        "/admin/tasks": {"get": {"tags": ["Tasks"], "summary": "List tasks", "parameters": [{"type": "string", "name": "status", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/user/tasks": {"get": {"tags": ["Tasks"], "summary": "List tasks", "parameters": [{"type": "string", "name": "status", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/admin/tasks/report": {"get": {"tags": ["Reports"], "summary": "Download the tasks report", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/admin/create-task": {
            "get": {"tags": ["Tasks"], "summary": "Open the task form", "parameters": [{"type": "string", "name": "taskId", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Tasks"], "summary": "Create or update a task", "parameters": [{"type": "string", "name": "taskId", "in": "query"}], "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"tags": ["Tasks"], "summary": "Delete a task", "parameters": [{"type": "string", "name": "taskId", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users": {"get": {"tags": ["Users"], "summary": "List team members with their task counters", "responses": {"200": {"description": "OK"}}}},
        "/admin/users/report": {"get": {"tags": ["Reports"], "summary": "Download the users report", "responses": {"200": {"description": "OK"}}}},
        "/user/task-details/{id}": {"get": {"tags": ["Tasks"], "summary": "Show a task to its assignee", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/user/task-details/{id}/todo/{index}": {"post": {"tags": ["Tasks"], "summary": "Tick or untick a checklist item", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "index", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "taskdesk",
	Description:      "Local surface of the taskdesk client. Screens answer with JSON view models.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
