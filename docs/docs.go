// Package docs registers the OpenAPI description served at /swagger.
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
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/v1/ai/parse-rfp": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Parse an RFP description",
                "parameters": [
                    {"description": "RFP description", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ParseRFPRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ParseRFPResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/ai/parse-response": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Parse a vendor reply",
                "parameters": [
                    {"description": "Vendor email and RFP", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ParseResponseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ParseResponseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/ai/parse-responses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Parse several vendor replies",
                "parameters": [
                    {"description": "Vendor emails and RFP", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ParseResponsesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ParseResponsesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/ai/compare": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Compare proposals",
                "parameters": [
                    {"description": "Proposals and RFP context", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CompareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CompareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/rfps": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rfps"],
                "summary": "List RFPs",
                "parameters": [{"type": "integer", "default": 20, "description": "Limit", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rfps"],
                "summary": "Create an RFP",
                "parameters": [
                    {"description": "RFP", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRFPRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/rfps/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rfps"],
                "summary": "Get an RFP",
                "parameters": [{"type": "string", "description": "RFP ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/rfps/{id}/proposals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rfps"],
                "summary": "List the proposals of an RFP",
                "parameters": [{"type": "string", "description": "RFP ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/rfps/{id}/responses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rfps"],
                "summary": "Record a vendor reply for an RFP",
                "parameters": [
                    {"type": "string", "description": "RFP ID", "name": "id", "in": "path", "required": true},
                    {"description": "Vendor reply", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RecordResponseRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/rfps/{id}/compare": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rfps"],
                "summary": "Compare the stored proposals of an RFP",
                "parameters": [{"type": "string", "description": "RFP ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CompareResponse"}}}
            }
        },
        "/api/v1/responses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rfps"],
                "summary": "Record a vendor reply by its subject tag",
                "parameters": [
                    {"description": "Vendor reply", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RecordResponseRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/vendors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vendors"],
                "summary": "List vendors",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vendors"],
                "summary": "Register a vendor",
                "parameters": [
                    {"description": "Vendor", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateVendorRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "error": {"type": "string"}}
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "gatewayAvailable": {"type": "boolean"}, "storage": {"type": "boolean"}}
        },
        "dto.ParseRFPRequest": {
            "type": "object",
            "properties": {"description": {"type": "string"}}
        },
        "dto.ParseRFPResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/models.StructuredRFP"}, "source": {"type": "string"}}
        },
        "dto.ParseResponseRequest": {
            "type": "object",
            "properties": {"emailContent": {"$ref": "#/definitions/models.VendorEmail"}, "rfp": {"$ref": "#/definitions/models.StructuredRFP"}}
        },
        "dto.ParseResponseResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/models.ParsedProposal"}, "source": {"type": "string"}}
        },
        "dto.ParseResponsesRequest": {
            "type": "object",
            "properties": {"emails": {"type": "array", "items": {"$ref": "#/definitions/models.VendorEmail"}}, "rfp": {"$ref": "#/definitions/models.StructuredRFP"}}
        },
        "dto.ParseResponsesResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "array", "items": {"$ref": "#/definitions/models.ParsedProposal"}}}
        },
        "dto.CompareRequest": {
            "type": "object",
            "properties": {"proposals": {"type": "array", "items": {"$ref": "#/definitions/models.ProposalSummary"}}, "rfp": {"$ref": "#/definitions/models.RFPContext"}}
        },
        "dto.CompareResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/models.ComparisonResult"}, "source": {"type": "string"}}
        },
        "dto.CreateRFPRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}}
        },
        "dto.CreateVendorRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "contactPerson": {"type": "string"}}
        },
        "dto.RecordResponseRequest": {
            "type": "object",
            "properties": {"vendorId": {"type": "string"}, "subject": {"type": "string"}, "body": {"type": "string"}}
        },
        "models.LineItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "specifications": {"type": "string"},
                "unitPrice": {"type": "number"},
                "totalPrice": {"type": "number"}
            }
        },
        "models.StructuredRFP": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.LineItem"}},
                "totalBudget": {"type": "number"},
                "currency": {"type": "string"},
                "deliveryDate": {"type": "string", "format": "date"},
                "deliveryDays": {"type": "integer"},
                "paymentTerms": {"type": "string"},
                "warranty": {"type": "string"},
                "specialRequirements": {"type": "string"}
            }
        },
        "models.StructuredProposal": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.LineItem"}},
                "totalPrice": {"type": "number"},
                "currency": {"type": "string"},
                "deliveryDate": {"type": "string", "format": "date"},
                "deliveryDays": {"type": "integer"},
                "paymentTerms": {"type": "string"},
                "warranty": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "models.ProposalAnalysis": {
            "type": "object",
            "properties": {
                "completenessScore": {"type": "integer"},
                "priceScore": {"type": "integer"},
                "deliveryScore": {"type": "integer"},
                "termsScore": {"type": "integer"},
                "totalScore": {"type": "integer"},
                "summary": {"type": "string"},
                "strengths": {"type": "array", "items": {"type": "string"}},
                "weaknesses": {"type": "array", "items": {"type": "string"}},
                "recommendation": {"type": "string", "enum": ["high", "medium", "low"]}
            }
        },
        "models.ParsedProposal": {
            "type": "object",
            "properties": {
                "proposalData": {"$ref": "#/definitions/models.StructuredProposal"},
                "analysis": {"$ref": "#/definitions/models.ProposalAnalysis"}
            }
        },
        "models.VendorEmail": {
            "type": "object",
            "properties": {"subject": {"type": "string"}, "body": {"type": "string"}}
        },
        "models.ProposalSummary": {
            "type": "object",
            "properties": {
                "vendorId": {"type": "string"},
                "vendorName": {"type": "string"},
                "structuredData": {"$ref": "#/definitions/models.StructuredProposal"},
                "aiAnalysis": {"$ref": "#/definitions/models.ProposalAnalysis"}
            }
        },
        "models.RFPContext": {
            "type": "object",
            "properties": {
                "structuredData": {"$ref": "#/definitions/models.StructuredRFP"},
                "description": {"type": "string"}
            }
        },
        "models.VendorComparisonEntry": {
            "type": "object",
            "properties": {
                "vendorId": {"type": "string"},
                "vendorName": {"type": "string"},
                "totalScore": {"type": "integer"},
                "priceRank": {"type": "integer"},
                "deliveryRank": {"type": "integer"},
                "valueForMoney": {"type": "integer"},
                "summary": {"type": "string"},
                "recommendation": {"type": "string", "enum": ["high", "medium", "low"]}
            }
        },
        "models.RecommendationSummary": {
            "type": "object",
            "properties": {
                "bestVendorId": {"type": "string"},
                "bestVendorName": {"type": "string"},
                "reason": {"type": "string"},
                "confidence": {"type": "integer"}
            }
        },
        "models.ComparisonResult": {
            "type": "object",
            "properties": {
                "comparison": {"type": "array", "items": {"$ref": "#/definitions/models.VendorComparisonEntry"}},
                "recommendation": {"$ref": "#/definitions/models.RecommendationSummary"},
                "insights": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "rfp-desk API",
	Description:      "Turns RFP descriptions and vendor replies into structured procurement data and compares proposals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
