package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
)

// RecaptchaService checks client tokens against Google's siteverify API.
type RecaptchaService struct {
	Secret    string
	VerifyURL string
	MinScore  float64
	Client    Doer
}

const recaptchaFailure = "reCAPTCHA verification failed"

type siteverifyResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	Hostname    string   `json:"hostname"`
	ChallengeTS string   `json:"challenge_ts"`
	ErrorCodes  []string `json:"error-codes"`
}

func (s RecaptchaService) Verify(ctx context.Context, token, remoteIP string) (models.RecaptchaResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.RecaptchaResult{}, domain.ValidationError{Field: "token"}
	}
	if strings.TrimSpace(s.Secret) == "" {
		return models.RecaptchaResult{}, domain.ConfigurationError{Setting: "RECAPTCHA_SECRET_KEY"}
	}

	form := url.Values{}
	form.Set("secret", s.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return models.RecaptchaResult{}, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := doUpstream(s.Client, req, "recaptcha", recaptchaFailure)
	if err != nil {
		return models.RecaptchaResult{}, err
	}

	var out siteverifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return models.RecaptchaResult{}, domain.UpstreamError{Service: "recaptcha", Status: http.StatusBadGateway, Msg: recaptchaFailure, Body: string(body), Err: err}
	}
	if !out.Success {
		return models.RecaptchaResult{}, domain.ValidationError{Msg: recaptchaFailure, Details: strings.Join(out.ErrorCodes, ", ")}
	}
	if s.MinScore > 0 && out.Score < s.MinScore {
		return models.RecaptchaResult{}, domain.ValidationError{
			Msg:     recaptchaFailure,
			Details: fmt.Sprintf("score %.2f below threshold %.2f", out.Score, s.MinScore),
		}
	}
	return models.RecaptchaResult{
		Score:       out.Score,
		Action:      out.Action,
		Hostname:    out.Hostname,
		ChallengeTS: out.ChallengeTS,
	}, nil
}
