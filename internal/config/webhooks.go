package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// TripWebhookKey is the route served by the fixed trip relay endpoint.
const TripWebhookKey = "trip"

var defaultFailureMessages = map[string]string{
	TripWebhookKey: "Failed to process trip data",
	"contact":      "Failed to submit contact form",
	"newsletter":   "Failed to subscribe to newsletter",
}

const defaultFailureMessage = "Failed to forward request"

// WebhookRoute is one relay target.
type WebhookRoute struct {
	Key            string
	URL            string
	FailureMessage string
}

// WebhookTable maps a normalized key to its relay target.
type WebhookTable map[string]WebhookRoute

// Lookup returns the configured route for key. A route with an empty URL
// counts as unconfigured.
func (t WebhookTable) Lookup(key string) (WebhookRoute, bool) {
	route, ok := t[NormalizeWebhookKey(key)]
	if !ok || strings.TrimSpace(route.URL) == "" {
		return WebhookRoute{}, false
	}
	return route, true
}

// FailureMessage is the error text reported when the upstream rejects a
// relayed request for key, whether or not the key is configured.
func FailureMessage(key string) string {
	if msg, ok := defaultFailureMessages[NormalizeWebhookKey(key)]; ok {
		return msg
	}
	return defaultFailureMessage
}

func NormalizeWebhookKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// LoadWebhooks builds the relay table. Sources in increasing priority: the
// optional YAML file, WEBHOOK_URLS, TRIP_WEBHOOK_URL.
func LoadWebhooks(e Env) (WebhookTable, error) {
	urls := map[string]string{}
	messages := map[string]string{}

	if path := strings.TrimSpace(e.WebhookConfigFile); path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read webhook config %s: %w", path, err)
		}
		for k, u := range v.GetStringMapString("webhooks") {
			urls[NormalizeWebhookKey(k)] = strings.TrimSpace(u)
		}
		for k, m := range v.GetStringMapString("messages") {
			messages[NormalizeWebhookKey(k)] = strings.TrimSpace(m)
		}
	}
	for k, u := range e.WebhookURLs {
		urls[NormalizeWebhookKey(k)] = strings.TrimSpace(u)
	}
	if u := strings.TrimSpace(e.TripWebhookURL); u != "" {
		urls[TripWebhookKey] = u
	}

	table := make(WebhookTable, len(urls))
	for k, u := range urls {
		if k == "" {
			continue
		}
		msg := messages[k]
		if msg == "" {
			msg = FailureMessage(k)
		}
		table[k] = WebhookRoute{Key: k, URL: u, FailureMessage: msg}
	}
	return table, nil
}
