package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jengzang/sightings-backend-go/pkg/response"
)

// SubjectKey is the context key holding the authenticated token subject
const SubjectKey = "subject"

var errMissingToken = errors.New("missing bearer token")

// ParseToken validates an HS256 token signed with secret and returns its claims
func ParseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}

// JWTAuth rejects requests without a valid bearer token
func JWTAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Unauthorized(c, err.Error())
			return
		}

		claims, err := ParseToken(token, key)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}

		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set(SubjectKey, sub)
		}
		c.Next()
	}
}
