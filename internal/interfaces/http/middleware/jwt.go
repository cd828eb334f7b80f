package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anascb/storefront/internal/domain/identity"
	"github.com/anascb/storefront/internal/infrastructure/auth"
	"github.com/anascb/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth middleware
const (
	ClaimsKey     = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth extracts claims when a valid token is present but lets
// anonymous requests through. Used on checkout so logged-in customers
// get their orders attributed.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err == nil {
			c.Set(ClaimsKey, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose role is not ADMIN.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}
		if claims.Role != string(identity.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Accès réservé aux administrateurs"))
			return
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.Validate(token)
}

func abortUnauthorized(c *gin.Context, err error) {
	code := "INVALID_TOKEN"
	message := "Authentification requise"
	if errors.Is(err, auth.ErrExpiredToken) {
		code = "TOKEN_EXPIRED"
		message = "Session expirée, veuillez vous reconnecter"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetClaims returns the token claims set by the auth middleware, or nil
func GetClaims(c *gin.Context) *auth.Claims {
	if raw, exists := c.Get(ClaimsKey); exists {
		if claims, ok := raw.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, err := claims.UserUUID()
	if err != nil {
		return uuid.Nil
	}
	return id
}
