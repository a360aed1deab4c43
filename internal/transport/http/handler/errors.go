package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noteshare/internal/domain"
	resp "noteshare/internal/transport/http/response"
)

// fail maps core errors onto response codes: not-found 404, authorization
// 403, bad credentials 401, validation 400, everything else 500. Integrity
// and transaction failures are logged here and never leak their cause.
func fail(c *gin.Context, log *zap.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusOK, resp.New(resp.CodeBadRequest, "validation failed", gin.H{
			"violations": ve.Violations,
		}))
	case errors.Is(err, domain.ErrNoteNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPermissionNotFound):
		c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, err.Error()))
	case errors.Is(err, domain.ErrAuthorization):
		c.JSON(http.StatusOK, resp.Error(resp.CodeForbidden, err.Error()))
	case errors.Is(err, domain.ErrBadCredentials):
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, err.Error()))
	default:
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, ""))
	}
}
