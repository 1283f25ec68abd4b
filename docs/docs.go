// Package docs registra el documento OpenAPI servido en /swagger.
// Regenerar con: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/router.healthResponse"}}}
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registrar usuario",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/users.authResponse"}},
                    "400": {"description": "campo faltante o email duplicado", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.authResponse"}},
                    "400": {"description": "campo faltante", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "401": {"description": "credenciales inválidas", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Usuario actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.userResponse"}},
                    "401": {"description": "sin token", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "403": {"description": "token inválido", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/auth/profile": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Actualizar perfil",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.updateProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.profileResponse"}},
                    "400": {"description": "campo inválido o email duplicado", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/announcements": {
            "get": {
                "produces": ["application/json"],
                "tags": ["announcements"],
                "summary": "Listar anuncios",
                "parameters": [{"type": "string", "description": "active | found | inactive", "name": "status", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/announcements.announcementResponse"}}},
                    "400": {"description": "status inválido", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["announcements"],
                "summary": "Crear anuncio",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/announcements.createAnnouncementRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/announcements.announcementEnvelope"}},
                    "400": {"description": "campo faltante o imagen inválida", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "401": {"description": "sin token", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "403": {"description": "token inválido", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/my-announcements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["announcements"],
                "summary": "Mis anuncios",
                "parameters": [{"type": "string", "description": "active | found | inactive", "name": "status", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/announcements.announcementResponse"}}},
                    "401": {"description": "sin token", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/announcements/{announcementID}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["announcements"],
                "summary": "Cambiar status",
                "parameters": [
                    {"type": "string", "description": "ID del anuncio", "name": "announcementID", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/announcements.updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/announcements.announcementEnvelope"}},
                    "400": {"description": "status inválido", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "404": {"description": "no existe o no es del caller", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/announcements/{announcementID}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Listar comentarios",
                "parameters": [{"type": "string", "description": "ID del anuncio", "name": "announcementID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/comments.commentResponse"}}},
                    "400": {"description": "id inválido", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comentar anuncio",
                "parameters": [
                    {"type": "string", "description": "ID del anuncio", "name": "announcementID", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/comments.createCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/comments.commentEnvelope"}},
                    "400": {"description": "contenido vacío o id inválido", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "404": {"description": "anuncio inexistente", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/neighborhoods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["geo"],
                "summary": "Listar bairros",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            }
        },
        "/get-location": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["geo"],
                "summary": "Bairro más cercano",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/geo.locationRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/geo.locationResponse"}},
                    "400": {"description": "coordenadas faltantes", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        }
    },
    "definitions": {
        "apperr.Response": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "details": {"type": "string"}}
        },
        "router.healthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "storage": {"type": "string"}}
        },
        "users.registerRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "phone": {"type": "string"}}
        },
        "users.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "users.updateProfileRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "password": {"type": "string"}}
        },
        "users.userResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "created_at": {"type": "string"}}
        },
        "users.authResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/users.userResponse"}}
        },
        "users.profileResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/users.userResponse"}}
        },
        "announcements.createAnnouncementRequest": {
            "type": "object",
            "properties": {
                "pet_name": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "neighborhood": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "image_data": {"type": "string"},
                "image_mime_type": {"type": "string"}
            }
        },
        "announcements.updateStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "announcements.ownerResponse": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}}
        },
        "announcements.announcementResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "pet_name": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "image": {"type": "string"},
                "neighborhood": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "status": {"type": "string"},
                "found_date": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "user": {"$ref": "#/definitions/announcements.ownerResponse"}
            }
        },
        "announcements.announcementEnvelope": {
            "type": "object",
            "properties": {"announcement": {"$ref": "#/definitions/announcements.announcementResponse"}}
        },
        "comments.createCommentRequest": {
            "type": "object",
            "properties": {"content": {"type": "string"}}
        },
        "comments.authorResponse": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "comments.commentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "announcement_id": {"type": "string"},
                "user_id": {"type": "string"},
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "user": {"$ref": "#/definitions/comments.authorResponse"}
            }
        },
        "comments.commentEnvelope": {
            "type": "object",
            "properties": {"comment": {"$ref": "#/definitions/comments.commentResponse"}}
        },
        "geo.locationRequest": {
            "type": "object",
            "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}}
        },
        "geo.locationResponse": {
            "type": "object",
            "properties": {"neighborhood": {"type": "string"}, "latitude": {"type": "number"}, "longitude": {"type": "number"}, "address": {"type": "string"}}
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
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Pet Lost & Found API",
	Description:      "Mural de mascotas perdidas y encontradas: anuncios, comentarios y bairros.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
