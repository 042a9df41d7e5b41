package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"travelplanner/internal/domain"
	"travelplanner/internal/http/middleware"
	"travelplanner/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError decodes the body into dst and answers 400 on failure.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "Invalid JSON body", "body is empty")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "http", "bind", err.Error())
		respondError(c, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return false
	}
	return true
}

func asValidation(err error, target *domain.ValidationError) bool {
	return errors.As(err, target)
}

// MethodNotAllowed answers any verb a route does not register.
func MethodNotAllowed(c *gin.Context) {
	RespondDomainError(c, "http", domain.MethodNotAllowedError{Method: c.Request.Method})
}

func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "Not found", "")
}

// Recover turns a panic into the standard 500 envelope.
func Recover(c *gin.Context, recovered any) {
	utils.LogEvent(middleware.GetRequestID(c), "http", "panic", fmt.Sprintf("recovered: %v", recovered))
	respondError(c, http.StatusInternalServerError, "Internal server error", "")
}
