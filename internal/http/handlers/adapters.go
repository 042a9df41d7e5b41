package handlers

import (
	"net/http"

	"travelplanner/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/images/search
func (h *Handler) SearchImages(c *gin.Context) {
	var req models.ImageSearchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	images, err := h.Svc.Images.Search(c.Request.Context(), req.Query, req.PerPage)
	if err != nil {
		RespondDomainError(c, "images", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "images": images})
}

// POST /api/ai/itinerary
func (h *Handler) GenerateItinerary(c *gin.Context) {
	var req models.ItineraryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	text, err := h.Svc.Itinerary.Generate(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, "itinerary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "itinerary": text})
}

// POST /api/recaptcha/verify
func (h *Handler) VerifyRecaptcha(c *gin.Context) {
	var req models.RecaptchaRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Svc.Recaptcha.Verify(c.Request.Context(), req.Token, c.ClientIP())
	if err != nil {
		RespondDomainError(c, "recaptcha", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"score":        res.Score,
		"action":       res.Action,
		"hostname":     res.Hostname,
		"challenge_ts": res.ChallengeTS,
	})
}

// POST /api/push/send
func (h *Handler) SendPush(c *gin.Context) {
	var req models.PushRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Svc.Push.Send(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, "push", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"notification_id": res.NotificationID,
		"recipients":      res.Recipients,
	})
}
