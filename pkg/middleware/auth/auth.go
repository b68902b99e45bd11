package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/agrigouv/pspc/internal/config"
	"github.com/agrigouv/pspc/pkg/common/code"
)

const (
	// USERKEY holds the authenticated *model.User on the gin context.
	USERKEY = "AUTH_USER_KEY"
	// TokenHeader is the custom header carrying the access token.
	TokenHeader = "x-access-token"
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// ParseToken validates an HS256 access token and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, code.InvalidToken
		}
		return []byte(config.Global().Auth.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, code.InvalidToken.WithErr(err)
	}
	return claims, nil
}
