package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/export"
	"festive-births-svc/internal/middleware"
	"festive-births-svc/internal/service"
	"festive-births-svc/pkg/logger"
	"festive-births-svc/pkg/utils"
)

// respondError maps service errors onto the response envelope
func respondError(c *gin.Context, log *logger.Logger, err error, message string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationErrorResponse(c, "Validation failed", verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		utils.NotFoundResponse(c, "Record not found")
	case errors.Is(err, service.ErrPermissionDenied):
		utils.ForbiddenResponse(c, "You do not have permission to perform this action")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, export.ErrStylesheetNotFound):
		log.WithError(err).Error("PDF stylesheet missing")
		utils.InternalServerErrorResponse(c, "PDF stylesheet is missing", err)
	default:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error(message)
		utils.InternalServerErrorResponse(c, message, err)
	}
}

// sendFile writes a complete file as an attachment download
func sendFile(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

// currentActor returns the authenticated actor. Routes are always behind Authenticate.
func currentActor(c *gin.Context) access.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}

// idParam parses :id or answers 400
func idParam(c *gin.Context, log *logger.Logger) (uint, bool) {
	id, err := utils.GetIDParam(c)
	if err != nil || id == 0 {
		log.WithField("id_param", c.Param("id")).Warn("Invalid id parameter")
		utils.BadRequestResponse(c, "Invalid ID", err)
		return 0, false
	}
	return id, true
}

func formSelection(c *gin.Context) access.FormSelection {
	return access.FormSelection{
		District:          c.Query("district"),
		LocalMunicipality: c.Query("local_municipality"),
	}
}
