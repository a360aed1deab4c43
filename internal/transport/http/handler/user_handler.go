package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noteshare/internal/service"
	mdw "noteshare/internal/transport/http/middleware"
	resp "noteshare/internal/transport/http/response"
)

type UserHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewUserHandler(users *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) Get(c *gin.Context) {
	u := mdw.CurrentUser(c)
	detail, err := h.users.GetUser(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(detail))
}

func (h *UserHandler) Delete(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if err := h.users.Delete(c.Request.Context(), u); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": u.ID}))
}
