// Package docs registers the Swagger specification of the intake JSON API.
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
        "/options": {
            "get": {
                "description": "List the products, document types and suppliers a submission may use",
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "List form options",
                "responses": {
                    "200": {
                        "description": "Option sets",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.Options"}}}
                            ]
                        }
                    }
                }
            }
        },
        "/submissions": {
            "post": {
                "description": "Create a SmartSuite record for the document and attach the PDF (max 25MB)",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Submit a document",
                "parameters": [
                    {"type": "string", "description": "Product", "name": "product", "in": "formData", "required": true},
                    {"type": "string", "description": "Document type", "name": "doc_type", "in": "formData", "required": true},
                    {"type": "string", "description": "Supplier", "name": "supplier", "in": "formData", "required": true},
                    {"type": "string", "description": "Filename stored on the record", "name": "filename", "in": "formData", "required": true},
                    {"type": "file", "description": "PDF document", "name": "pdf_document", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {
                        "description": "Record created and file attached",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.SubmissionResult"}}}
                            ]
                        }
                    },
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "502": {"description": "SmartSuite rejected the submission", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "503": {"description": "SmartSuite configuration incomplete", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Options": {
            "type": "object",
            "properties": {
                "doc_types": {"type": "array", "items": {"type": "string"}},
                "products": {"type": "array", "items": {"type": "string"}},
                "suppliers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.SubmissionResult": {
            "type": "object",
            "properties": {
                "file_info": {"type": "object"},
                "record_id": {"type": "string"}
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "handler.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Document Intake API",
	Description:      "Submit supplier PDFs with product, document type and supplier metadata to SmartSuite.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
