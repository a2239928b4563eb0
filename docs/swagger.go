package docs

import "github.com/swaggo/swag"

// @title           Taskboard API
// @version         1.0
// @description     API for managing shared task boards, statuses, tasks, attachments and collaborators

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration and login

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Statuses
// @tag.description Status management operations, including transfer-delete

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Collaborators
// @tag.description Board sharing operations

// @tag.name Attachments
// @tag.description Task attachment operations

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Taskboard API",
	Description:      "API for managing shared task boards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}"
}`

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
