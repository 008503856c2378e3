package handler

import "github.com/freelancehub/marketplace/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// authRequest is the envelope for POST /auth. All request kinds share one
// endpoint and are discriminated by Action; per-action fields are validated
// after dispatch.
type authRequest struct {
	Action    string `json:"action"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	UserType  string `json:"userType,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Title     string `json:"title,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// registerRequest fields are declared in the order the endpoint reports
// missing fields, so the first validator violation matches that order.
type registerRequest struct {
	Email     string `json:"email"     validate:"required"`
	Password  string `json:"password"  validate:"required,min=6"`
	UserType  string `json:"userType"  validate:"required,oneof=client freelancer"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Title     string `json:"title"`
}

// authResponse is returned by login and register. The user carries its own
// JSON shape; the password hash never serializes.
type authResponse struct {
	Message      string       `json:"message"`
	SessionToken string       `json:"sessionToken"`
	User         *domain.User `json:"user"`
}

type verifyResponse struct {
	Valid bool         `json:"valid"`
	User  *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
