package api

import (
	"log"

	"travelplanner/internal/config"
	h "travelplanner/internal/http/handlers"
	"travelplanner/internal/http/middleware"
	"travelplanner/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env, svc services.Services) *gin.Engine {
	hd := h.New(env, svc)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID(), middleware.Logger(), gin.CustomRecovery(h.Recover), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	// Preflight never reaches a route: CORS also runs in the NoRoute and
	// NoMethod chains and answers OPTIONS there.
	r.NoRoute(h.NotFound)
	r.NoMethod(h.MethodNotAllowed)

	auth := middleware.Authenticate(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/integrations", hd.Integrations)

		// Relays
		api.POST("/webhooks/:key", hd.Relay)
		api.POST("/trip-webhook", hd.RelayTrip)

		// Adapters
		api.POST("/geocode", hd.Geocode)
		api.POST("/geocode/reverse", hd.ReverseGeocode)
		api.POST("/images/search", hd.SearchImages)
		api.POST("/ai/itinerary", hd.GenerateItinerary)
		api.POST("/recaptcha/verify", hd.VerifyRecaptcha)
		api.POST("/push/send", hd.SendPush)

		// Record writes
		api.POST("/subscriptions/transactions", auth, hd.RecordTransaction)
		api.POST("/users/email-sync", auth, hd.SyncEmail)

		admin := api.Group("/admin", auth)
		if env.JWTSecret != "" {
			admin.Use(middleware.RequireRoles("admin"))
		} else {
			log.Printf("warning: SUPABASE_JWT_SECRET is empty, admin routes are unauthenticated")
		}
		admin.POST("/users/role", hd.UpdateRole)
	}

	return r
}
