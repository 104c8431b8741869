// Package docs is generated by swaggo/swag from the handler annotations.
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
                "description": "Report database and cache status. Responds 503 when a configured dependency is down.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthStatus"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthStatus"}}
                }
            }
        },
        "/metrics/history": {
            "get": {
                "description": "Get stored daily observations, newest first",
                "produces": ["application/json"],
                "tags": ["metrics"],
                "summary": "Get observation history",
                "parameters": [
                    {"type": "integer", "default": 30, "description": "Number of days (1-365)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.StockData"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "description": "Get counts and averages over all stored observations and analyses",
                "produces": ["application/json"],
                "tags": ["metrics"],
                "summary": "Get aggregate metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MetricsSummary"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/pipeline/run": {
            "post": {
                "description": "Fetch, store and analyse one trading day. Defaults to yesterday.",
                "produces": ["application/json"],
                "tags": ["pipeline"],
                "summary": "Run the daily pipeline",
                "parameters": [
                    {"type": "string", "description": "Trading day (YYYY-MM-DD)", "name": "date", "in": "query"},
                    {"type": "boolean", "description": "Re-analyse even when an analysis exists", "name": "force", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RunReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.RunReport"}}
                }
            }
        },
        "/recommendations/history": {
            "get": {
                "description": "Get stored analyses joined with their observation, newest first",
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Get analysis history",
                "parameters": [
                    {"type": "integer", "default": 30, "description": "Number of analyses (1-365)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RecommendationHistoryItem"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/reports/latest": {
            "get": {
                "description": "Get the latest observation together with its newest analysis",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Get the latest report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LatestReport"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AnalysisResult": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "metrics_id": {"type": "integer"},
                "date": {"type": "string"},
                "sentiment": {"type": "string", "example": "bullish"},
                "risk_score": {"type": "integer", "example": 4},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "price_prediction": {"type": "number", "example": 153.26},
                "summary": {"type": "string"},
                "model_used": {"type": "string"},
                "raw_response": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "symbol": {"type": "string"},
                "provider": {"type": "string"},
                "model": {"type": "string"},
                "components": {"type": "object", "additionalProperties": {"type": "string"}},
                "timestamp": {"type": "string"}
            }
        },
        "dto.LatestReport": {
            "type": "object",
            "properties": {
                "observation": {"$ref": "#/definitions/dto.StockData"},
                "analysis": {"$ref": "#/definitions/dto.AnalysisResult"},
                "change_pct": {"type": "number"}
            }
        },
        "dto.MetricsSummary": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "observation_count": {"type": "integer"},
                "analysis_count": {"type": "integer"},
                "avg_close_price": {"type": "number"},
                "avg_risk_score": {"type": "number"},
                "sentiments": {"type": "object", "additionalProperties": {"type": "integer"}},
                "fallback_count": {"type": "integer"},
                "first_date": {"type": "string"},
                "last_date": {"type": "string"}
            }
        },
        "dto.RecommendationHistoryItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "date": {"type": "string"},
                "symbol": {"type": "string"},
                "close_price": {"type": "number"},
                "sentiment": {"type": "string"},
                "risk_score": {"type": "integer"},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "price_prediction": {"type": "number"},
                "summary": {"type": "string"},
                "model_used": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "dto.RunReport": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "date": {"type": "string"},
                "forced": {"type": "boolean"},
                "already_analyzed": {"type": "boolean"},
                "analysis_only": {"type": "boolean"},
                "analysis_path": {"type": "string"},
                "steps": {"type": "array", "items": {"$ref": "#/definitions/dto.StepResult"}},
                "observation": {"$ref": "#/definitions/dto.StockData"},
                "analysis": {"$ref": "#/definitions/dto.AnalysisResult"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"}
            }
        },
        "dto.StepResult": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.StockData": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "symbol": {"type": "string"},
                "date": {"type": "string"},
                "open": {"type": "number"},
                "close": {"type": "number"},
                "high": {"type": "number"},
                "low": {"type": "number"},
                "volume": {"type": "integer"},
                "vwap": {"type": "number"},
                "transactions": {"type": "integer"},
                "raw_data": {"type": "object"}
            }
        },
        "dto.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationError"}}
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
	Title:            "Stock Intelligence API",
	Description:      "Read API over daily stock observations and their AI analyses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
