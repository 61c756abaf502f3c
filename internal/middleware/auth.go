package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"choubo/internal/config"
	"choubo/internal/domain"
)

const (
	ContextKeyCompanyID = "company_id"
	ContextKeyClaims    = "claims"
)

// Claims are the JWT claims the service accepts. CompanyID scopes every
// query the caller makes.
type Claims struct {
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware returns Gin middleware that validates JWT bearer tokens
// and injects the company context.
func AuthMiddleware(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := validateToken(token, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyCompanyID, claims.CompanyID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func validateToken(token string, cfg *config.JWTConfig) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.CompanyID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// GetCompanyID extracts the company ID from the Gin context.
func GetCompanyID(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyCompanyID)
	if !exists {
		return "", domain.ErrUnauthorized
	}
	return val.(string), nil
}
