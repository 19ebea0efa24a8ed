// Package docs holds the OpenAPI document served under /swagger.
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
		"/signup": {
			"post": {
				"tags": [
					"Users"
				],
				"summary": "Sign up",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.SignupRequest"
						}
					}
				]
			}
		},
		"/signin": {
			"post": {
				"tags": [
					"Users"
				],
				"summary": "Sign in",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.SigninRequest"
						}
					}
				]
			}
		},
		"/auth_data": {
			"get": {
				"tags": [
					"Users"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/project": {
			"get": {
				"tags": [
					"Projects"
				],
				"summary": "List projects",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "per_page",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"Projects"
				],
				"summary": "Create project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ProjectRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/project/{id}": {
			"put": {
				"tags": [
					"Projects"
				],
				"summary": "Update project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ProjectRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"Projects"
				],
				"summary": "Delete project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/task": {
			"get": {
				"tags": [
					"Tasks"
				],
				"summary": "List tasks",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "per_page",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"Tasks"
				],
				"summary": "Create task",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.TaskRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/task/{id}": {
			"put": {
				"tags": [
					"Tasks"
				],
				"summary": "Update task",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.TaskRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"Tasks"
				],
				"summary": "Delete task",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"handler.SignupRequest": {
			"type": "object",
			"required": [
				"email",
				"full_name",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"full_name": {
					"type": "string",
					"maxLength": 100
				},
				"password": {
					"type": "string",
					"minLength": 8
				}
			}
		},
		"handler.SigninRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string",
					"minLength": 8
				}
			}
		},
		"handler.ProjectRequest": {
			"type": "object",
			"required": [
				"due_date",
				"name"
			],
			"properties": {
				"name": {
					"type": "string",
					"maxLength": 100
				},
				"description": {
					"type": "string",
					"maxLength": 5000
				},
				"due_date": {
					"type": "string"
				}
			}
		},
		"handler.TaskRequest": {
			"type": "object",
			"required": [
				"assigned_to_user_id",
				"due_date",
				"priority",
				"project_id",
				"status",
				"title"
			],
			"properties": {
				"title": {
					"type": "string",
					"maxLength": 100
				},
				"description": {
					"type": "string",
					"maxLength": 5000
				},
				"due_date": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"todo",
						"in_progress",
						"done"
					]
				},
				"priority": {
					"type": "string",
					"enum": [
						"low",
						"medium",
						"high"
					]
				},
				"assigned_to_user_id": {
					"type": "integer"
				},
				"project_id": {
					"type": "integer"
				}
			}
		},
		"response.Envelope": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"data": {},
				"messages": {}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "ProjectHub API",
	Description:      "Projects and tasks behind role-based permissions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
