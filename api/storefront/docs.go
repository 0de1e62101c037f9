// Package storefront registers the Swagger document served under /swagger/.
// Regenerate with: swag init -g internal/storefront/http/router.go -o api/storefront --outputTypes go
package storefront

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/storefront"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "description": "Liveness probe. Always 200 while the process is serving.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.HealthResponse"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe. 503 when the database cannot be reached.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "service not ready",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.HealthResponse"
                        }
                    }
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "description": "Creates a regular account and returns an access token for it.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Register",
                "parameters": [
                    {
                        "description": "New account",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.TokenResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request body or validation failed",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ValidationErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email already registered",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "description": "Verifies the password and issues an HS256 access token. Unknown emails and wrong passwords get the same answer.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.TokenResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request body or validation failed",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ValidationErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid email or password",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/profile": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Profile"
                ],
                "summary": "Get profile",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.UserResponse"
                        }
                    },
                    "401": {
                        "description": "Missing, invalid or expired token",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Account no longer exists",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Profile"
                ],
                "summary": "Update profile",
                "parameters": [
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.UpdateProfileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request body or validation failed",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ValidationErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Missing, invalid or expired token",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Account no longer exists",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/products": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "List products",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact category match",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "newest (default), price_asc, price_desc or name",
                        "name": "sort",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ProductListResponse"
                        }
                    },
                    "400": {
                        "description": "Unknown sort",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Create product",
                "parameters": [
                    {
                        "description": "Product",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ProductRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request body or validation failed",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ValidationErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Caller is not an admin",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/products/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Get product",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ProductResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Update product",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Product",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ProductRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request body or validation failed",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ValidationErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Caller is not an admin",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Delete product",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Caller is not an admin",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/cart/price": {
            "post": {
                "description": "Resolves unit prices from the catalog and returns subtotal, shipping, tax, discount and total as two-decimal strings.\nAn unrecognized promo code is not an error: the cart is priced without a discount, promo.status is \"unrecognized\" and warning is set.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Price a cart",
                "parameters": [
                    {
                        "description": "Cart",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.CartPriceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.CartPriceResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request body, or a quantity below 1",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ValidationErrorResponse"
                        }
                    },
                    "422": {
                        "description": "A product is not in the catalog",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/bootstrap": {
            "post": {
                "description": "Creates the first admin account. Only available when a bootstrap token is configured, and only while no account exists.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Bootstrap"
                ],
                "summary": "Bootstrap the storefront",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Bootstrap token for authorization",
                        "name": "X-Bootstrap-Token",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "First admin",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.BootstrapRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.BootstrapResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request body or validation failed",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ValidationErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid bootstrap token",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Bootstrap not enabled (no token configured)",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already bootstrapped",
                        "schema": {
                            "$ref": "#/definitions/storefrontsdk.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "storefrontsdk.BootstrapRequest": {
            "type": "object",
            "properties": {
                "admin_email": {
                    "type": "string",
                    "example": "admin@example.com"
                },
                "admin_name": {
                    "type": "string",
                    "example": "Administrator"
                },
                "admin_password": {
                    "type": "string"
                }
            }
        },
        "storefrontsdk.BootstrapResponse": {
            "type": "object",
            "properties": {
                "admin_user_id": {
                    "type": "string"
                }
            }
        },
        "storefrontsdk.CartItem": {
            "type": "object",
            "properties": {
                "product_id": {
                    "type": "string",
                    "example": "prd_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"
                },
                "quantity": {
                    "type": "integer",
                    "example": 2
                }
            }
        },
        "storefrontsdk.CartLineResponse": {
            "type": "object",
            "properties": {
                "line_total": {
                    "type": "string",
                    "example": "99.98"
                },
                "name": {
                    "type": "string"
                },
                "product_id": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "unit_price": {
                    "type": "string",
                    "example": "49.99"
                }
            }
        },
        "storefrontsdk.CartPriceRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/storefrontsdk.CartItem"
                    }
                },
                "promo_code": {
                    "type": "string",
                    "example": "WELCOME10"
                }
            }
        },
        "storefrontsdk.CartPriceResponse": {
            "type": "object",
            "properties": {
                "discount": {
                    "type": "string",
                    "example": "5.00"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/storefrontsdk.CartLineResponse"
                    }
                },
                "promo": {
                    "$ref": "#/definitions/storefrontsdk.PromoResponse"
                },
                "shipping": {
                    "type": "string",
                    "example": "10.00"
                },
                "subtotal": {
                    "type": "string",
                    "example": "49.99"
                },
                "tax": {
                    "type": "string",
                    "example": "3.50"
                },
                "total": {
                    "type": "string",
                    "example": "58.49"
                },
                "warning": {
                    "type": "string",
                    "description": "Warning is set when the promo code was not recognized."
                }
            }
        },
        "storefrontsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "invalid_request"
                },
                "error_description": {
                    "type": "string",
                    "example": "request body is not valid JSON"
                }
            }
        },
        "storefrontsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {
                    "type": "string"
                }
            }
        },
        "storefrontsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {
                    "$ref": "#/definitions/storefrontsdk.HealthChecks"
                },
                "status": {
                    "type": "string",
                    "example": "ok"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "storefrontsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "ada@example.com"
                },
                "password": {
                    "type": "string",
                    "example": "correct horse battery"
                }
            }
        },
        "storefrontsdk.ProductListResponse": {
            "type": "object",
            "properties": {
                "products": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/storefrontsdk.ProductResponse"
                    }
                }
            }
        },
        "storefrontsdk.ProductRequest": {
            "type": "object",
            "properties": {
                "brand": {
                    "type": "string",
                    "example": "Acme"
                },
                "category": {
                    "type": "string",
                    "example": "shirts"
                },
                "count_in_stock": {
                    "type": "integer",
                    "example": 12
                },
                "description": {
                    "type": "string"
                },
                "image_url": {
                    "type": "string"
                },
                "name": {
                    "type": "string",
                    "example": "Linen shirt"
                },
                "price": {
                    "type": "string",
                    "example": "49.99"
                }
            }
        },
        "storefrontsdk.ProductResponse": {
            "type": "object",
            "properties": {
                "brand": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "count_in_stock": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string",
                    "example": "prd_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"
                },
                "image_url": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "type": "string",
                    "example": "49.99"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "storefrontsdk.PromoResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string",
                    "example": "WELCOME10"
                },
                "status": {
                    "type": "string",
                    "description": "Status is none, applied or unrecognized.",
                    "example": "applied"
                }
            }
        },
        "storefrontsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "ada@example.com"
                },
                "name": {
                    "type": "string",
                    "example": "Ada"
                },
                "password": {
                    "type": "string",
                    "example": "correct horse battery"
                }
            }
        },
        "storefrontsdk.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "expires_in": {
                    "type": "integer",
                    "example": 2592000
                },
                "token_type": {
                    "type": "string",
                    "example": "Bearer"
                },
                "user": {
                    "$ref": "#/definitions/storefrontsdk.UserResponse"
                }
            }
        },
        "storefrontsdk.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "storefrontsdk.UserResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "email": {
                    "type": "string",
                    "example": "ada@example.com"
                },
                "id": {
                    "type": "string",
                    "example": "usr_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"
                },
                "is_admin": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string",
                    "example": "Ada"
                }
            }
        },
        "storefrontsdk.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string",
                    "example": "validation_error"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "message": {
                    "type": "string",
                    "example": "validation failed for some fields"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Storefront API",
	Description:      "Product catalog, accounts and server-side cart pricing.\n\nAccess tokens are HS256 JWTs issued by /v1/auth/login and /v1/auth/register.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
