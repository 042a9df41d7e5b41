package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Integrations reports which outbound integrations are configured. Values are
// booleans only.
func (h *Handler) Integrations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"integrations": h.Env.Integrations(),
		"webhooks":     h.Svc.Relay.Configured(),
	})
}
