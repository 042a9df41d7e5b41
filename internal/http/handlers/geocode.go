package handlers

import (
	"net/http"

	"travelplanner/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/geocode
func (h *Handler) Geocode(c *gin.Context) {
	var req models.GeocodeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Svc.Geocode.Forward(c.Request.Context(), req.Location)
	if err != nil {
		RespondDomainError(c, "geocode", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"latitude":   res.Latitude,
		"longitude":  res.Longitude,
		"place_name": res.PlaceName,
	})
}

// POST /api/geocode/reverse
func (h *Handler) ReverseGeocode(c *gin.Context) {
	var req models.ReverseGeocodeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Svc.Geocode.Reverse(c.Request.Context(), req.Latitude, req.Longitude)
	if err != nil {
		RespondDomainError(c, "geocode", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"place_name": res.PlaceName,
		"city":       res.City,
		"country":    res.Country,
	})
}
