package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noteshare/internal/service"
	resp "noteshare/internal/transport/http/response"
)

type AdminHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewAdminHandler(users *service.UserService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: log}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // 可选：按 email/name 模糊搜
		WithDeleted bool   `form:"with_deleted"` // 是否包含软删
	}
	type row struct {
		ID        uint      `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
	var in listQ
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	users, total, err := h.users.List(c.Request.Context(), in.Offset, in.Limit, in.Q, in.WithDeleted)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	items := make([]row, 0, len(users))
	for _, u := range users {
		items = append(items, row{
			ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp.Page(total, items))
}

// Ban 封禁 = 走完整的用户软删级联
func (h *AdminHandler) Ban(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteByID(c.Request.Context(), userID); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": userID}))
}
