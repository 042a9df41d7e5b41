package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/utils"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ItineraryService drafts day-by-day plans with an OpenAI chat completion.
type ItineraryService struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

const (
	itineraryFailure   = "Failed to generate itinerary"
	maxItineraryDays   = 30
	itineraryMaxTokens = 1500
	itinerarySystem    = "You are a travel planner. Reply with a concise day-by-day itinerary in plain text. Each day starts with 'Day N:' followed by morning, afternoon and evening suggestions."
)

func (s ItineraryService) Generate(ctx context.Context, in models.ItineraryRequest) (string, error) {
	prompt, err := buildItineraryPrompt(in)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return "", domain.ConfigurationError{Setting: "OPENAI_API_KEY"}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(s.HTTPClient))
	}
	if base := strings.TrimSpace(s.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")+"/"))
	}
	client := openai.NewClient(opts...)

	model := strings.TrimSpace(s.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "itinerary", "generate", "model="+model)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(itinerarySystem),
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(itineraryMaxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", domain.UpstreamError{Service: "openai", Status: apiErr.StatusCode, Msg: itineraryFailure, Body: apiErr.Message}
		}
		return "", domain.UpstreamError{Service: "openai", Status: http.StatusBadGateway, Msg: itineraryFailure, Err: err}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domain.NotFoundError{Resource: "itinerary"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildItineraryPrompt(in models.ItineraryRequest) (string, error) {
	destination := utils.NormalizeSpace(in.Destination)
	if destination == "" {
		return "", domain.ValidationError{Field: "destination"}
	}
	days := in.Days
	if days <= 0 {
		days = 3
	}
	if days > maxItineraryDays {
		return "", domain.ValidationError{Field: "days", Msg: fmt.Sprintf("must be at most %d", maxItineraryDays)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-day trip to %s.", days, destination)
	if in.Travelers > 0 {
		fmt.Fprintf(&b, " Group size: %d.", in.Travelers)
	}
	if interests := utils.CleanList(in.Interests); len(interests) > 0 {
		fmt.Fprintf(&b, " Interests: %s.", strings.Join(interests, ", "))
	}
	return b.String(), nil
}
