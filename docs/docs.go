// Package docs регистрирует описание JSON API для swagger-ui.
// Пересобирается командой swag init -g cmd/main.go.
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
        "/api/colleges/{collegeId}/tabs/{tabId}/sections/{sectionId}/layout": {
            "get": {
                "security": [{"CookieAuth": []}],
                "description": "Блоки секции в порядке показа: PDF, карусель, изображения, контент, затем медиа after_content",
                "produces": ["application/json"],
                "tags": ["sections"],
                "summary": "Раскладка секции",
                "parameters": [
                    {"type": "string", "description": "ID колледжа", "name": "collegeId", "in": "path", "required": true},
                    {"type": "string", "description": "ID вкладки или хайлайта", "name": "tabId", "in": "path", "required": true},
                    {"type": "string", "description": "ID секции", "name": "sectionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/helpers.Response"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/render.Block"}}}}
                            ]
                        }
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.Response"}}
                }
            }
        },
        "/api/upload": {
            "post": {
                "security": [{"CookieAuth": []}],
                "description": "Проверяет тип и размер файла и загружает его в хранилище CMS. Возвращает URL.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Загрузка файла",
                "parameters": [
                    {"type": "file", "description": "Файл", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "image | video | pdf | any", "name": "kind", "in": "formData"}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/helpers.Response"},
                                {"type": "object", "properties": {"data": {"type": "string"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.Response"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/helpers.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/helpers.Response"}}
                }
            }
        }
    },
    "definitions": {
        "helpers.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"}
            }
        },
        "models.Image": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "models.PDF": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "name": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "render.Block": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["pdf", "carousel", "image", "content"]},
                "label": {"type": "string"},
                "pdf": {"$ref": "#/definitions/models.PDF"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/models.Image"}},
                "content": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "Cookie",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "College Admin API",
	Description:      "JSON API админки колледжей (раскладка секций, загрузка файлов). Страницы дашборда отдаются как HTML.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
