package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"fictionhub/config"
	"fictionhub/internal/domain/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(c *gin.Context) (jwt.MapClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, fmt.Errorf("bearer token malformed")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.JWT_SECRET), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func setPrincipal(c *gin.Context, claims jwt.MapClaims) {
	if userIDFloat, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", uint(userIDFloat))
	}
	if username, ok := claims["username"].(string); ok {
		c.Set("username", username)
	}
}

// AuthMiddleware rejects requests without a valid bearer token. Used on every
// mutating route, so unauthenticated writes fail with 401 before any handler
// runs.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}
		claims, err := parseToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the principal when a valid token is present
// and lets anonymous requests through. Reads are open to everyone; a token
// that is present but invalid is still rejected rather than silently ignored.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if claims != nil {
			setPrincipal(c, claims)
		}
		c.Next()
	}
}

// CurrentPrincipal reads the principal the auth middleware stored on the
// context; the zero value means anonymous.
func CurrentPrincipal(c *gin.Context) access.Principal {
	return access.Principal{
		ID:   c.GetUint("user_id"),
		Name: c.GetString("username"),
	}
}
