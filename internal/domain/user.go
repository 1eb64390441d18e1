package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims do token emitido pela aplicação principal do
// marketplace. Este serviço apenas valida o token, nunca o emite.
type Claims struct {
	UserID     int64  `json:"user_id"`
	UserRoleID int    `json:"role_id"`
	Name       string `json:"name"`
	jwt.RegisteredClaims
}
