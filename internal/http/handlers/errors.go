package handlers

import (
	"net/http"

	"travelplanner/internal/domain"
	"travelplanner/internal/http/middleware"
	"travelplanner/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every failure is reported in.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, message, details string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}

// RespondDomainError logs err and maps it to a status and envelope.
func RespondDomainError(c *gin.Context, module string, err error) {
	reqID := middleware.GetRequestID(c)
	action := c.Request.Method + " " + c.FullPath()

	if up, ok := domain.AsUpstream(err); ok {
		utils.LogError(reqID, module, action, err, up.Body)
		status := up.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		msg := up.Msg
		if msg == "" {
			msg = "Upstream request failed"
		}
		details := up.Body
		if details == "" && up.Err != nil {
			details = up.Err.Error()
		}
		respondError(c, status, msg, details)
		return
	}

	utils.LogError(reqID, module, action, err, "")
	var verr domain.ValidationError
	switch {
	case asValidation(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Error(), verr.Details)
	case domain.IsMethodNotAllowed(err):
		respondError(c, http.StatusMethodNotAllowed, "Method not allowed", "")
	case domain.IsConfiguration(err):
		respondError(c, http.StatusInternalServerError, domain.ConfigurationMessage, "")
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), "")
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, err.Error(), "")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
