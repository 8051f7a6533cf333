package domain

import "github.com/golang-jwt/jwt/v5"

// Operator roles. The dashboard has a fixed roster of operators provisioned
// through configuration; there is no user CRUD.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User is a dashboard operator.
type User struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Claims carried in the session token.
type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
