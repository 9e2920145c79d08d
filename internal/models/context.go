package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type contextKey string

// ContextUser is the request-context key holding the authenticated principal.
const ContextUser contextKey = "user"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AuthUser is the identity the auth middleware attaches to every request.
type AuthUser struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

func (u AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
