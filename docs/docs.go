// Package docs registra la especificación OpenAPI que sirve /swagger/*.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Estado del servicio", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Base de datos no disponible"}}}
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Registrar usuario", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}, "409": {"description": "El usuario o email ya existe", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Iniciar sesión", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Credenciales inválidas", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}}}
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Cerrar sesión",
                "responses": {"200": {"description": "OK"}, "401": {"description": "No token provided"}, "403": {"description": "Invalid token or expired"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Usuario del token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "No token provided"}, "403": {"description": "Invalid token or expired"}}}
        },
        "/auth/password": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Cambiar contraseña",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Contraseña actual incorrecta"}}}
        },
        "/api/owner": {
            "get": {"tags": ["owners"], "summary": "Listar propietarios", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["owners"], "summary": "Crear propietario",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Ya existe un propietario con ese email"}}}
        },
        "/api/owner/{id}": {
            "get": {"tags": ["owners"], "summary": "Obtener propietario", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Propietario no encontrado"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["owners"], "summary": "Actualizar propietario", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["owners"], "summary": "Eliminar propietario", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/pet": {
            "get": {"tags": ["pets"], "summary": "Listar mascotas", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["pets"], "summary": "Crear mascota", "responses": {"201": {"description": "Created"}}}
        },
        "/api/pet/owner/{ownerId}": {
            "get": {"tags": ["pets"], "summary": "Mascotas de un propietario", "parameters": [{"type": "string", "name": "ownerId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/pet/{id}": {
            "get": {"tags": ["pets"], "summary": "Obtener mascota", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["pets"], "summary": "Actualizar mascota", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["pets"], "summary": "Eliminar mascota", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/medical-record": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["medical-records"], "summary": "Listar historiales", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["medical-records"], "summary": "Crear historial", "responses": {"201": {"description": "Created"}}}
        },
        "/api/medical-record/pet/{petId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["medical-records"], "summary": "Historial de una mascota",
                "parameters": [
                    {"type": "string", "name": "petId", "in": "path", "required": true},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/medical-record/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["medical-records"], "summary": "Obtener historial", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["medical-records"], "summary": "Actualizar historial", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["medical-records"], "summary": "Eliminar historial", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/categoria": {
            "get": {"tags": ["categories"], "summary": "Listar categorías", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Crear categoría", "responses": {"201": {"description": "Created"}}}
        },
        "/api/categoria/{id}": {
            "get": {"tags": ["categories"], "summary": "Obtener categoría", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Actualizar categoría", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Eliminar categoría", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/producto": {
            "get": {"tags": ["products"], "summary": "Listar productos", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Crear producto", "responses": {"201": {"description": "Created"}}}
        },
        "/api/producto/{id}": {
            "get": {"tags": ["products"], "summary": "Obtener producto", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Actualizar producto", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Eliminar producto", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/user": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Listar usuarios", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Crear usuario", "responses": {"201": {"description": "Created"}}}
        },
        "/api/user/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Obtener usuario", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Actualizar usuario", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Eliminar usuario", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "error"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
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
	Title:            "Vet Clinic API",
	Description:      "API de la clínica veterinaria: propietarios, mascotas, historias clínicas, catálogo y usuarios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
