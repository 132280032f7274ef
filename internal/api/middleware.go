package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

const ctxUserIDKey = "requester_id"

// identityClaims - проверенные утверждения identity-провайдера; ядру
// нужны только subject, email и имя
type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// IdentityMiddleware разбирает bearer-токен и резолвит пользователя
// справочника по subject, создавая запись при первом обращении.
// Внутренний ID пользователя кладется в контекст запроса.
func IdentityMiddleware(secret string, users domain.UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.ParseWithClaims(tokenStr, &identityClaims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(*identityClaims)
		if !ok || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		user, err := users.GetOrCreateBySubject(c.Request.Context(), claims.Subject, claims.Email, claims.Name)
		if err != nil {
			logger.Error("failed to resolve request identity", "subject", claims.Subject, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(ctxUserIDKey, user.ID)
		c.Next()
	}
}

// requesterID возвращает внутренний ID пользователя текущего запроса
func requesterID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}
