package handlers

import (
	"net/http"

	"travelplanner/internal/config"

	"github.com/gin-gonic/gin"
)

// POST /api/webhooks/:key
func (h *Handler) Relay(c *gin.Context) {
	h.relay(c, c.Param("key"))
}

// POST /api/trip-webhook, the fixed trip relay.
func (h *Handler) RelayTrip(c *gin.Context) {
	h.relay(c, config.TripWebhookKey)
}

func (h *Handler) relay(c *gin.Context, key string) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	out, err := h.Svc.Relay.Forward(c.Request.Context(), key, body)
	if err != nil {
		RespondDomainError(c, "relay", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
