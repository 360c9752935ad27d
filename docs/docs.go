// Package docs registra la especificación Swagger que sirve /swagger/*.
// Se mantiene a mano junto con las anotaciones de los handlers.
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
        "/session/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Inicia la sesión con el token del backend",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/session/logout": {
            "post": {"tags": ["session"], "summary": "Cierra la sesión y vacía el estado local", "responses": {"204": {"description": "No Content"}}}
        },
        "/session": {
            "get": {"produces": ["application/json"], "tags": ["session"], "summary": "Usuario de la sesión actual", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/community": {
            "get": {
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Feed de la comunidad filtrado",
                "parameters": [
                    {"type": "string", "name": "tag", "in": "query"},
                    {"type": "string", "name": "species", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "boolean", "name": "only_nearby", "in": "query"},
                    {"type": "number", "name": "lat", "in": "query"},
                    {"type": "number", "name": "lng", "in": "query"},
                    {"type": "number", "name": "radius_km", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/community/lost": {
            "post": {"consumes": ["multipart/form-data"], "tags": ["community"], "summary": "Publica una mascota perdida", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/community/{tag}/{id}": {
            "delete": {"tags": ["community"], "summary": "Borra una publicación propia", "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/pets": {
            "get": {"produces": ["application/json"], "tags": ["pets"], "summary": "Lista las mascotas del usuario", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["multipart/form-data"], "tags": ["pets"], "summary": "Crea una mascota", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/pets/{petID}": {
            "get": {"tags": ["pets"], "summary": "Detalle de una mascota", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"consumes": ["multipart/form-data"], "tags": ["pets"], "summary": "Edita una mascota", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"tags": ["pets"], "summary": "Borra una mascota", "responses": {"204": {"description": "No Content"}}}
        },
        "/alerts": {
            "get": {"produces": ["application/json"], "tags": ["alerts"], "summary": "Alertas del usuario", "responses": {"200": {"description": "OK"}}}
        },
        "/alerts/{alertID}/read": {
            "post": {"tags": ["alerts"], "summary": "Marca una alerta como leída", "responses": {"204": {"description": "No Content"}}}
        },
        "/scans/{kind}": {
            "post": {"consumes": ["multipart/form-data"], "tags": ["scans"], "summary": "Analiza una foto con IA", "responses": {"200": {"description": "OK"}, "204": {"description": "No Content"}, "402": {"description": "Payment Required"}}}
        },
        "/ui": {
            "get": {"produces": ["application/json"], "tags": ["ui"], "summary": "Estado de la UI y de las colecciones locales", "responses": {"200": {"description": "OK"}}}
        },
        "/ui/actions": {
            "post": {"consumes": ["application/json"], "tags": ["ui"], "summary": "Aplica una acción de UI", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/refresh": {
            "post": {"produces": ["application/json"], "tags": ["refresh"], "summary": "Vuelve a traer todas las colecciones", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Companion API",
	Description:      "Gateway de la app: comunidad con filtro geográfico y sincronización después de cada mutación.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
