package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"noteshare/internal/core/auth"
	"noteshare/internal/domain"
	resp "noteshare/internal/transport/http/response"
)

const keyCurrentUser = "currentUser"

// AuthJWT 解析 Bearer token 并加载未删除的用户；软删用户视为不存在
func AuthJWT(j *auth.JWTer, users domain.UserRepository, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		u, err := users.FindUndeletedByID(c.Request.Context(), claims.UID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, "internal error"))
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unknown user"))
			return
		}
		c.Set(keyCurrentUser, u)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// CurrentUser returns the authenticated user resolved by AuthJWT, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(keyCurrentUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
