// Package docs holds the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marker .Schemes }},
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
        "/bookings": {
            "post": {
                "tags": [
                    "booking"
                ],
                "summary": "Submit a booking",
                "description": "Validate and store a booking. One booking per email per day. Notifications are sent after the response.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Booking form",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/bookingcheck.Input"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.CreateBookingResp"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "tags": [
                    "booking"
                ],
                "summary": "List bookings",
                "description": "All bookings, newest first. Includes spreadsheet-only rows when merge on read is enabled.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Booking"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/bookings/{id}": {
            "get": {
                "tags": [
                    "booking"
                ],
                "summary": "Get booking",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "format": "uuid",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Booking ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Booking"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "booking"
                ],
                "summary": "Delete booking",
                "description": "Deleting an id that does not exist also succeeds.",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "format": "uuid",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Booking ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/serializer.SuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/content/public": {
            "get": {
                "tags": [
                    "content"
                ],
                "summary": "Public site content",
                "description": "Editable page copy and image paths. Seeds the defaults on first read.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.SiteContent"
                            }
                        }
                    }
                }
            }
        },
        "/content": {
            "get": {
                "tags": [
                    "content"
                ],
                "summary": "List site content",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.SiteContent"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/content/{id}": {
            "put": {
                "tags": [
                    "content"
                ],
                "summary": "Update site content",
                "description": "Replace the content of one entry.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "format": "uuid",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Content ID"
                    },
                    {
                        "description": "New content",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateContentReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SiteContent"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/content/upload-image": {
            "post": {
                "tags": [
                    "content"
                ],
                "summary": "Presign an image upload",
                "description": "Returns a presigned PUT URL for a public site image and the object path to store in content.",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.UploadTarget"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/content/images": {
            "post": {
                "tags": [
                    "content"
                ],
                "summary": "Upload a site image",
                "description": "Stores a public site image server side and returns the object path to store in content.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "Image file",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/service.StoredImage"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/bookings/{id}/notifications": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Notification history of a booking",
                "description": "Every follow-up delivery run recorded for the booking, oldest first.",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "format": "uuid",
                        "description": "Booking ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.NotificationLog"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": [
                    "admin"
                ],
                "summary": "Admin login",
                "description": "Checks the admin password and sets the admin_auth session cookie.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin password",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.LoginReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/serializer.SuccessResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/logout": {
            "post": {
                "tags": [
                    "admin"
                ],
                "summary": "Admin logout",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/serializer.SuccessResponse"
                        }
                    }
                }
            }
        },
        "/admin/stats": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Booking statistics",
                "description": "Totals for the dashboard. Revenue uses the price in effect today.",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.BookingStats"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/recent-bookings": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Latest bookings",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Booking"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/bookings": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "All bookings",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Booking"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/receipts/upload": {
            "post": {
                "tags": [
                    "receipt"
                ],
                "summary": "Presign a receipt upload",
                "description": "Returns a presigned PUT URL. Send objectPath as receiptPath when submitting the booking.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.UploadTarget"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/receipts": {
            "post": {
                "tags": [
                    "receipt"
                ],
                "summary": "Upload a receipt",
                "description": "Stores an image or PDF receipt server side.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "Receipt image or PDF",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/service.StoredReceipt"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/serializer.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "bookingcheck.Input": {
            "type": "object",
            "properties": {
                "fullName": {
                    "type": "string",
                    "example": "Somchai Jaidee"
                },
                "telephone": {
                    "type": "string",
                    "example": "+66 81 234 5678"
                },
                "email": {
                    "type": "string",
                    "example": "somchai@gmail.com"
                },
                "receiptPath": {
                    "type": "string",
                    "example": "/objects/receipts/0b6f8c1e"
                },
                "earlyBirdConfirmed": {
                    "type": "boolean"
                },
                "cancellationPolicyAccepted": {
                    "type": "boolean"
                }
            }
        },
        "handler.BookingSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "fullName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "handler.CreateBookingResp": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "booking": {
                    "$ref": "#/definitions/handler.BookingSummary"
                }
            }
        },
        "handler.UpdateContentReq": {
            "type": "object",
            "required": [
                "content"
            ],
            "properties": {
                "content": {
                    "type": "string",
                    "example": "Sunday, 14 December 2025"
                }
            }
        },
        "handler.LoginReq": {
            "type": "object",
            "required": [
                "password"
            ],
            "properties": {
                "password": {
                    "type": "string"
                }
            }
        },
        "model.Booking": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "fullName": {
                    "type": "string"
                },
                "telephone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "receiptPath": {
                    "type": "string"
                },
                "earlyBirdConfirmed": {
                    "type": "boolean"
                },
                "cancellationPolicyAccepted": {
                    "type": "boolean"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "model.SiteContent": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "key": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "serializer.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {}
            }
        },
        "serializer.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "service.BookingStats": {
            "type": "object",
            "properties": {
                "totalBookings": {
                    "type": "integer"
                },
                "totalRevenue": {
                    "type": "integer"
                },
                "todayBookings": {
                    "type": "integer"
                },
                "pendingPayments": {
                    "type": "integer"
                }
            }
        },
        "service.UploadTarget": {
            "type": "object",
            "properties": {
                "uploadURL": {
                    "type": "string"
                },
                "objectPath": {
                    "type": "string"
                }
            }
        },
        "model.NotificationLog": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "booking_id": {
                    "type": "string"
                },
                "delivered": {
                    "type": "boolean"
                },
                "channel": {
                    "type": "string"
                },
                "attempts": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "service.StoredImage": {
            "type": "object",
            "properties": {
                "objectPath": {
                    "type": "string"
                },
                "mimeType": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                }
            }
        },
        "service.StoredReceipt": {
            "type": "object",
            "properties": {
                "receiptPath": {
                    "type": "string"
                },
                "mimeType": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "AdminCookie": {
            "type": "apiKey",
            "name": "admin_auth",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Tonelab Booking API",
	Description:      "Bookings, site content and admin dashboard for the Tonelab Pilates event.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
