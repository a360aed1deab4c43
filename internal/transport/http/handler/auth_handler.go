package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noteshare/internal/core/auth"
	"noteshare/internal/service"
	mdw "noteshare/internal/transport/http/middleware"
	resp "noteshare/internal/transport/http/response"
)

type AuthHandler struct {
	users *service.UserService
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthHandler(users *service.UserService, jwter *auth.JWTer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwter: jwter, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.users.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	tok, err := h.jwter.Issue(u.ID, u.Role)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	tok, err := h.jwter.Issue(u.ID, u.Role)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if u == nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
		return
	}
	detail, err := h.users.GetUser(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(detail))
}
