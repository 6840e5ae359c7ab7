package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	bearerSchema = "Bearer "
	subjectKey   = "subject"

	DefaultTokenDuration = time.Hour * 24
)

var (
	errInvalidToken = errors.New("invalid token")
	errExpiredToken = errors.New("token has expired")
)

// NewToken signs an HS256 token for subject that expires after ttl
func NewToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(secret []byte, tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errExpiredToken
		}
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

func (srv *Server) authMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Authorization header is required",
		})
		return
	}

	if !strings.HasPrefix(authHeader, bearerSchema) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Authorization header must start with 'Bearer'",
		})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, bearerSchema)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required",
		})
		return
	}

	claims, err := parseToken([]byte(srv.cfg.JWTSecret), tokenString)
	if err != nil {
		message := "Invalid token"
		if errors.Is(err, errExpiredToken) {
			message = "Token has expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": message,
		})
		return
	}

	c.Set(subjectKey, claims.Subject)
	c.Next()
}

// Subject returns the authenticated token subject, or "" when the
// request was not authenticated.
func Subject(c *gin.Context) string {
	if v, exists := c.Get(subjectKey); exists {
		if subject, ok := v.(string); ok {
			return subject
		}
	}
	return ""
}
