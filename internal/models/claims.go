package models

import "github.com/golang-jwt/jwt/v5"

// Claims defines the information carried in a bearer token.
type Claims struct {
	// UserID identifies the authenticated user.
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
