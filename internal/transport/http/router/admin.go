package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noteshare/internal/core/auth"
	"noteshare/internal/domain"
	"noteshare/internal/transport/http/handler"
	mdw "noteshare/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, users domain.UserRepository, adminH *handler.AdminHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, users, "admin"))

	admin.GET("/users", adminH.ListUsers)
	admin.POST("/users/:id/ban", adminH.Ban)

	return r
}
