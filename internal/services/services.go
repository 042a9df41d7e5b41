package services

import (
	"database/sql"
	"net/http"

	"travelplanner/internal/cache"
	"travelplanner/internal/config"
	"travelplanner/internal/repositories"
)

// Services bundles every handler dependency, built once from Env.
type Services struct {
	Relay         RelayService
	Geocode       GeocodeService
	Images        ImageService
	Itinerary     ItineraryService
	Recaptcha     RecaptchaService
	Push          PushService
	Users         UserSyncService
	Subscriptions SubscriptionService
}

// New wires services from configuration. c and db may be nil.
func New(env config.Env, webhooks config.WebhookTable, c cache.Cache, db *sql.DB) Services {
	client := &http.Client{Timeout: env.UpstreamTimeout}

	profiles := repositories.ProfileRepository{DB: db, Driver: env.DBDriver}
	return Services{
		Relay: RelayService{Webhooks: webhooks, Client: client},
		Geocode: GeocodeService{
			Token:    env.MapboxToken,
			BaseURL:  env.MapboxBaseURL,
			Client:   client,
			Cache:    c,
			CacheTTL: env.GeocodeCacheTTL,
		},
		Images: ImageService{AccessKey: env.UnsplashAccessKey, BaseURL: env.UnsplashBaseURL, Client: client},
		Itinerary: ItineraryService{
			APIKey:     env.OpenAIAPIKey,
			Model:      env.OpenAIModel,
			BaseURL:    env.OpenAIBaseURL,
			HTTPClient: client,
		},
		Recaptcha: RecaptchaService{
			Secret:    env.RecaptchaSecret,
			VerifyURL: env.RecaptchaVerifyURL,
			MinScore:  env.RecaptchaMinScore,
			Client:    client,
		},
		Push: PushService{AppID: env.OneSignalAppID, APIKey: env.OneSignalAPIKey, URL: env.OneSignalURL, Client: client},
		Users: UserSyncService{
			Profiles: profiles,
			Copies: map[string]EmailCopyWriter{
				repositories.NewsletterSubscribersTable: repositories.EmailCopyRepository{DB: db, Driver: env.DBDriver, Table: repositories.NewsletterSubscribersTable},
				repositories.TripCollaboratorsTable:     repositories.EmailCopyRepository{DB: db, Driver: env.DBDriver, Table: repositories.TripCollaboratorsTable},
			},
		},
		Subscriptions: SubscriptionService{
			Transactions: repositories.TransactionRepository{DB: db, Driver: env.DBDriver},
			Profiles:     profiles,
		},
	}
}
