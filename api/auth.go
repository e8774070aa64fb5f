package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const anonymousOwner = "anonymous"

// authMiddleware resolves the request owner. A bearer token is optional: the
// dashboard works anonymously, but when a token is present it must verify,
// and drafts/snapshots become scoped to its subject.
func (m ApiHandler) authMiddleware(c *gin.Context) {
	owner := anonymousOwner

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") && m.JwtSecret != "" {
		subject, err := m.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			returnErrorCode(c, 401, "Sessão expirada. Faça login novamente.")
			return
		}
		owner = subject
	}

	c.Set("owner", owner)
	c.Next()
}

func (m ApiHandler) parseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.JwtSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return subject, nil
}

func ownerFromContext(c *gin.Context) string {
	if owner, ok := c.Get("owner"); ok {
		if s, ok := owner.(string); ok {
			return s
		}
	}
	return anonymousOwner
}
