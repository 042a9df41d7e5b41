package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/utils"

	"github.com/tidwall/gjson"
)

// PushService sends notifications through OneSignal, addressing users by the
// external id the app registers at login.
type PushService struct {
	AppID  string
	APIKey string
	URL    string
	Client Doer
}

const (
	pushFailure     = "Failed to send notification"
	maxPushAudience = 2000
)

type oneSignalNotification struct {
	AppID          string              `json:"app_id"`
	IncludeAliases map[string][]string `json:"include_aliases"`
	TargetChannel  string              `json:"target_channel"`
	Headings       map[string]string   `json:"headings"`
	Contents       map[string]string   `json:"contents"`
	Data           map[string]string   `json:"data,omitempty"`
	URL            string              `json:"url,omitempty"`
}

func (s PushService) Send(ctx context.Context, in models.PushRequest) (models.PushResult, error) {
	users := utils.CleanList(in.UserIDs)
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	switch {
	case len(users) == 0:
		return models.PushResult{}, domain.ValidationError{Field: "user_ids"}
	case len(users) > maxPushAudience:
		return models.PushResult{}, domain.ValidationError{Field: "user_ids", Msg: fmt.Sprintf("at most %d recipients per call", maxPushAudience)}
	case title == "":
		return models.PushResult{}, domain.ValidationError{Field: "title"}
	case message == "":
		return models.PushResult{}, domain.ValidationError{Field: "message"}
	}
	if strings.TrimSpace(s.AppID) == "" {
		return models.PushResult{}, domain.ConfigurationError{Setting: "ONESIGNAL_APP_ID"}
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return models.PushResult{}, domain.ConfigurationError{Setting: "ONESIGNAL_REST_API_KEY"}
	}

	payload, err := json.Marshal(oneSignalNotification{
		AppID:          s.AppID,
		IncludeAliases: map[string][]string{"external_id": users},
		TargetChannel:  "push",
		Headings:       map[string]string{"en": title},
		Contents:       map[string]string{"en": message},
		Data:           in.Data,
		URL:            strings.TrimSpace(in.URL),
	})
	if err != nil {
		return models.PushResult{}, fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return models.PushResult{}, fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+s.APIKey)

	utils.LogEvent(utils.RequestIDFrom(ctx), "push", "send", fmt.Sprintf("recipients=%d", len(users)))
	body, err := doUpstream(s.Client, req, "onesignal", pushFailure)
	if err != nil {
		return models.PushResult{}, err
	}

	id := gjson.GetBytes(body, "id").String()
	if id == "" {
		return models.PushResult{}, domain.NotFoundError{Resource: "push subscribers"}
	}
	return models.PushResult{
		NotificationID: id,
		Recipients:     int(gjson.GetBytes(body, "recipients").Int()),
	}, nil
}
