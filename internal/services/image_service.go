package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/utils"

	"github.com/tidwall/gjson"
)

// ImageService searches Unsplash for destination photos.
type ImageService struct {
	AccessKey string
	BaseURL   string
	Client    Doer
}

const (
	defaultImagesPerPage = 10
	maxImagesPerPage     = 30
)

func (s ImageService) Search(ctx context.Context, query string, perPage int) ([]models.Image, error) {
	query = utils.NormalizeSpace(query)
	if query == "" {
		return nil, domain.ValidationError{Field: "query"}
	}
	if strings.TrimSpace(s.AccessKey) == "" {
		return nil, domain.ConfigurationError{Setting: "UNSPLASH_ACCESS_KEY"}
	}
	switch {
	case perPage <= 0:
		perPage = defaultImagesPerPage
	case perPage > maxImagesPerPage:
		perPage = maxImagesPerPage
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("orientation", "landscape")
	endpoint := strings.TrimRight(s.BaseURL, "/") + "/search/photos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build image search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.AccessKey)
	req.Header.Set("Accept-Version", "v1")

	body, err := doUpstream(s.Client, req, "unsplash", "Failed to search images")
	if err != nil {
		// Rate limiting is reported to callers as "no images", not as a failure.
		// TODO: confirm with product whether throttling should surface as 429.
		if up, ok := domain.AsUpstream(err); ok && (up.Status == http.StatusForbidden || up.Status == http.StatusTooManyRequests) {
			utils.LogEvent(utils.RequestIDFrom(ctx), "images", "search", fmt.Sprintf("rate limited status=%d, returning empty result", up.Status))
			return []models.Image{}, nil
		}
		return nil, err
	}

	results := gjson.GetBytes(body, "results").Array()
	if len(results) == 0 {
		return nil, domain.NotFoundError{Resource: "images"}
	}
	out := make([]models.Image, 0, len(results))
	for _, r := range results {
		alt := r.Get("alt_description").String()
		if alt == "" {
			alt = r.Get("description").String()
		}
		out = append(out, models.Image{
			ID:              r.Get("id").String(),
			URL:             r.Get("urls.regular").String(),
			Thumb:           r.Get("urls.small").String(),
			Alt:             alt,
			Photographer:    r.Get("user.name").String(),
			PhotographerURL: r.Get("user.links.html").String(),
		})
	}
	return out, nil
}
