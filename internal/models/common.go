package models

import "github.com/golang-jwt/jwt/v5"

// Pagination describes paging metadata returned alongside list payloads.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// AccessClaims are the claims carried by access tokens issued by the
// identity service. This API only validates them.
type AccessClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
