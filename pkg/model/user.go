package model

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenClaims is the decoded identity carried by a verified bearer token.
// Deliberately excludes the password.
type TokenClaims struct {
	Username string
	Role     Role
}
