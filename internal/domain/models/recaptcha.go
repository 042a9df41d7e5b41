package models

type RecaptchaRequest struct {
	Token string `json:"token"`
}

type RecaptchaResult struct {
	Score       float64 `json:"score"`
	Action      string  `json:"action,omitempty"`
	Hostname    string  `json:"hostname,omitempty"`
	ChallengeTS string  `json:"challenge_ts,omitempty"`
}
