package ds

import (
	"mycloud/internal/app/role"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// JWTClaims — клеймы сессионного токена кабинета. SessionID указывает
// на запись в Redis, где лежат access/refresh токены биллинга.
type JWTClaims struct {
	jwt.StandardClaims
	SessionID uuid.UUID `json:"session_id"`
	Email     string    `json:"email"`
	Role      role.Role `json:"role"`
}
