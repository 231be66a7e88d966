package handler

import (
	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string     `json:"tenant_slug" binding:"required" example:"frischmarkt"`
	Initials   string     `json:"initials" binding:"required" example:"MM"`
	PIN        string     `json:"pin" binding:"required" example:"4711"`
	MarketID   *uuid.UUID `json:"market_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// SwitchMarketRequest represents the market switch request body.
type SwitchMarketRequest struct {
	MarketID uuid.UUID `json:"market_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateTenantRequest represents the update tenant request body.
type UpdateTenantRequest struct {
	Name     *string `json:"name" example:"Frischmarkt GmbH"`
	Slug     *string `json:"slug" example:"frischmarkt"`
	Timezone *string `json:"timezone" example:"Europe/Berlin"`
}

// CreateMarketRequest represents the create market request body.
type CreateMarketRequest struct {
	Name    string `json:"name" binding:"required" example:"Markt Nord"`
	Code    string `json:"code" binding:"required" example:"NORD"`
	Address string `json:"address" example:"Hauptstraße 1, 20095 Hamburg"`
}

// UpdateMarketRequest represents the update market request body.
type UpdateMarketRequest struct {
	Name     *string `json:"name" example:"Markt Nord"`
	Code     *string `json:"code" example:"NORD"`
	Address  *string `json:"address" example:"Hauptstraße 1, 20095 Hamburg"`
	IsActive *bool   `json:"is_active" example:"true"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// DownloadURLResponse carries a presigned attachment URL.
type DownloadURLResponse struct {
	URL string `json:"url" example:"https://bucket.s3.eu-central-1.amazonaws.com/tenants/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
