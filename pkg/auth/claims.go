package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Subject string
	Name    string
	Roles   []enums.Role
}

// AccessTokenClaims is the token shape issued by the identity provider.
type AccessTokenClaims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c *AccessTokenClaims) HasAnyRole(roles ...enums.Role) bool {
	if c == nil {
		return false
	}
	for _, held := range c.Roles {
		for _, want := range roles {
			if held == string(want) {
				return true
			}
		}
	}
	return false
}
