package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"

	"travelplanner/internal/config"
	"travelplanner/internal/domain"
	"travelplanner/internal/utils"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// RelayService forwards JSON bodies to configured webhooks.
type RelayService struct {
	Webhooks config.WebhookTable
	Client   Doer
}

// Forward posts body verbatim to the webhook registered under key and returns
// the upstream JSON object with success set to true.
func (s RelayService) Forward(ctx context.Context, key string, body []byte) ([]byte, error) {
	key = config.NormalizeWebhookKey(key)
	if key == "" {
		return nil, domain.ValidationError{Field: "webhook", Msg: "Missing webhook key"}
	}
	if len(bytes.TrimSpace(body)) == 0 || !gjson.ValidBytes(body) {
		return nil, domain.ValidationError{Msg: "Invalid JSON body"}
	}

	route, ok := s.Webhooks.Lookup(key)
	if !ok {
		return nil, domain.ConfigurationError{Setting: "webhook url for " + key}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, route.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	utils.LogEvent(utils.RequestIDFrom(ctx), "relay", "forward", "key="+key)
	upstream, err := doUpstream(s.Client, req, "webhook "+key, route.FailureMessage)
	if err != nil {
		return nil, err
	}
	return withSuccess(upstream)
}

// withSuccess merges success:true into an upstream JSON object. Anything that
// is not a JSON object is replaced by an empty one first.
func withSuccess(upstream []byte) ([]byte, error) {
	obj := bytes.TrimSpace(upstream)
	if !gjson.ValidBytes(obj) || !gjson.ParseBytes(obj).IsObject() {
		obj = []byte(`{}`)
	}
	out, err := sjson.SetBytes(obj, "success", true)
	if err != nil {
		return nil, fmt.Errorf("merge relay response: %w", err)
	}
	return out, nil
}

// Configured lists relay keys with a target URL.
func (s RelayService) Configured() []string {
	out := make([]string, 0, len(s.Webhooks))
	for k := range s.Webhooks {
		if _, ok := s.Webhooks.Lookup(k); ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
