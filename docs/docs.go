// Package docs registers the swagger spec served at /swagger. Regenerate with
// `swag init` after changing handler annotations.
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
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register new user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User login",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products": {
            "get": {
                "tags": ["Products"],
                "summary": "Get all products",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["Products"],
                "summary": "Get product by ID",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/cart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Get cart",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cart/add": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Add item to cart",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/cart/update/{itemId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Update cart item",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/cart/remove/{itemId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Remove cart item",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/cart/clear": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Clear cart",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/orders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Orders"],
                "summary": "Create order",
                "responses": {"201": {"description": "Created"}}
            },
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Orders"],
                "summary": "List orders",
                "responses": {"200": {"description": "OK"}}
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

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fashion Shop API",
	Description:      "REST API for the fashion shop backend: auth, catalog, cart and orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
