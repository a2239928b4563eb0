package middleware

import (
	"strings"

	"taskboard/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key under which the resolved requester id is
// stored.
const UserIDKey = "userID"

// Authenticate resolves an Authorization bearer header to a user id. A
// request without a usable credential stays anonymous; whether anonymous
// access is acceptable is decided per operation by the access engine, and a
// missing or malformed credential is treated the same there.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		userID, err := tokens.Resolve(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// RequesterID extracts the authenticated user id from the gin context, nil
// for anonymous requests.
func RequesterID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return nil
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}
