package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noteshare/internal/domain"
	"noteshare/internal/service"
	mdw "noteshare/internal/transport/http/middleware"
	resp "noteshare/internal/transport/http/response"
)

type NoteHandler struct {
	notes *service.NoteService
	perms *service.PermissionService
	log   *zap.Logger
}

func NewNoteHandler(notes *service.NoteService, perms *service.PermissionService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, perms: perms, log: log}
}

func (h *NoteHandler) List(c *gin.Context) {
	u := mdw.CurrentUser(c)
	previews, err := h.notes.GetNoteList(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(previews))
}

func (h *NoteHandler) Create(c *gin.Context) {
	u := mdw.CurrentUser(c)
	detail, err := h.notes.Create(c.Request.Context(), u)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(detail))
}

func (h *NoteHandler) Get(c *gin.Context) {
	u := mdw.CurrentUser(c)
	noteID, ok := paramID(c, "id")
	if !ok {
		return
	}
	note, err := h.notes.GetUndeletedNote(c.Request.Context(), noteID)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	detail, err := h.notes.GetNoteDetail(c.Request.Context(), note, u.ID)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(detail))
}

func (h *NoteHandler) Update(c *gin.Context) {
	u := mdw.CurrentUser(c)
	note, ok := h.editableNote(c, u)
	if !ok {
		return
	}
	var in service.NoteUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	detail, err := h.notes.Update(c.Request.Context(), note.ID, in, u)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(detail))
}

func (h *NoteHandler) Delete(c *gin.Context) {
	u := mdw.CurrentUser(c)
	note, ok := h.editableNote(c, u)
	if !ok {
		return
	}
	if err := h.notes.Delete(c.Request.Context(), note, u); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": note.ID}))
}

func (h *NoteHandler) Share(c *gin.Context) {
	u := mdw.CurrentUser(c)
	noteID, ok := paramID(c, "id")
	if !ok {
		return
	}
	type shareIn struct {
		Username  string `json:"username" binding:"required"`
		ReadOnly  bool   `json:"readOnly"`
		ReadWrite bool   `json:"readWrite"`
	}
	var in shareIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	perm, err := h.perms.CreateShare(c.Request.Context(), noteID, u, in.Username, domain.PermissionType{
		ReadOnly:  in.ReadOnly,
		ReadWrite: in.ReadWrite,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(perm))
}

// editableNote resolves the target note and gates mutation: the creator may
// always edit, anyone else needs an active accepted write grant.
func (h *NoteHandler) editableNote(c *gin.Context, u *domain.User) (*domain.Note, bool) {
	noteID, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	note, err := h.notes.GetUndeletedNote(c.Request.Context(), noteID)
	if err != nil {
		fail(c, h.log, err)
		return nil, false
	}
	if note.CreatedByID != u.ID {
		canWrite, err := h.perms.CanUpdateNote(c.Request.Context(), note.ID, u.ID)
		if err != nil {
			fail(c, h.log, err)
			return nil, false
		}
		if !canWrite {
			fail(c, h.log, domain.ErrAuthorization)
			return nil, false
		}
	}
	return note, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "invalid id"))
		return 0, false
	}
	return uint(id), true
}
