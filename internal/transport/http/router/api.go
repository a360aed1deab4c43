package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"noteshare/internal/core/auth"
	"noteshare/internal/domain"
	"noteshare/internal/transport/http/handler"
	mdw "noteshare/internal/transport/http/middleware"
)

type APIHandlers struct {
	Auth  *handler.AuthHandler
	Notes *handler.NoteHandler
	Share *handler.ShareHandler
	User  *handler.UserHandler
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, users domain.UserRepository, h APIHandlers) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		cors.Default(),
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
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共接口
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// 鉴权分组
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, users, ""))

	authed.GET("/me", h.Auth.Me)

	authed.GET("/notes", h.Notes.List)
	authed.POST("/notes", h.Notes.Create)
	authed.GET("/notes/:id", h.Notes.Get)
	authed.PATCH("/notes/:id", h.Notes.Update)
	authed.PATCH("/notes/:id/delete", h.Notes.Delete)
	authed.POST("/notes/:id/shares", h.Notes.Share)

	authed.PATCH("/shares/:id/accept", h.Share.Accept)
	authed.PATCH("/shares/:id/deny", h.Share.Deny)
	authed.PATCH("/shares/:id/revoke", h.Share.Revoke)

	authed.GET("/user", h.User.Get)
	authed.PATCH("/user/delete", h.User.Delete)

	return r
}
