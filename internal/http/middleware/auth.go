package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// accessClaims is the subset of a Supabase access token this service reads.
// The app role lives in app_metadata, which only the backend can write.
type accessClaims struct {
	Role        string `json:"role"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token with the project's HS256 JWT secret
// and stores the user id and app role on the context. An empty secret turns
// verification off.
func Authenticate(secret string) gin.HandlerFunc {
	key := []byte(strings.TrimSpace(secret))
	return func(c *gin.Context) {
		if len(key) == 0 {
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "details": "missing bearer token"})
			return
		}

		claims, err := parseAccessToken(raw, key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "details": err.Error()})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(userRoleKey, claims.AppMetadata.Role)
		c.Next()
	}
}

func parseAccessToken(raw string, key []byte) (*accessClaims, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID returns the authenticated subject, if any.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetUserRole returns the app role from the verified token, if any.
func GetUserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}
