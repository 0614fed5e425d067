package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeMarksAdmin grants write access to mark records.
const ScopeMarksAdmin = "marks:admin"

// AdminLoginRequest carries the shared admin secret.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse keeps the legacy success flag and adds the issued token.
type AdminLoginResponse struct {
	Success   bool       `json:"success"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// AdminClaims is the payload of an admin capability token.
type AdminClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}
