package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noteshare/internal/service"
	mdw "noteshare/internal/transport/http/middleware"
	resp "noteshare/internal/transport/http/response"
)

type ShareHandler struct {
	perms *service.PermissionService
	log   *zap.Logger
}

func NewShareHandler(perms *service.PermissionService, log *zap.Logger) *ShareHandler {
	return &ShareHandler{perms: perms, log: log}
}

func (h *ShareHandler) Accept(c *gin.Context) {
	u := mdw.CurrentUser(c)
	permID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.perms.Accept(c.Request.Context(), permID, u.ID); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": permID}))
}

func (h *ShareHandler) Deny(c *gin.Context) {
	u := mdw.CurrentUser(c)
	permID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.perms.Deny(c.Request.Context(), permID, u.ID); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": permID}))
}

func (h *ShareHandler) Revoke(c *gin.Context) {
	u := mdw.CurrentUser(c)
	permID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.perms.Revoke(c.Request.Context(), permID, u.ID); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": permID}))
}
