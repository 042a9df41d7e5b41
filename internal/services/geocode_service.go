package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travelplanner/internal/cache"
	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/utils"

	"github.com/tidwall/gjson"
)

// GeocodeService wraps Mapbox forward and reverse geocoding. Cache is optional.
type GeocodeService struct {
	Token    string
	BaseURL  string
	Client   Doer
	Cache    cache.Cache
	CacheTTL time.Duration
}

const geocodeFailure = "Failed to geocode location"

func (s GeocodeService) Forward(ctx context.Context, location string) (models.GeocodeResult, error) {
	location = utils.NormalizeSpace(location)
	if location == "" {
		return models.GeocodeResult{}, domain.ValidationError{Field: "location"}
	}
	if strings.TrimSpace(s.Token) == "" {
		return models.GeocodeResult{}, domain.ConfigurationError{Setting: "MAPBOX_ACCESS_TOKEN"}
	}

	var out models.GeocodeResult
	key := cache.ForwardGeocodeKey(location)
	if s.cached(ctx, key, &out) {
		return out, nil
	}

	q := url.Values{}
	q.Set("access_token", s.Token)
	q.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		strings.TrimRight(s.BaseURL, "/"), url.PathEscape(location), q.Encode())

	body, err := s.get(ctx, endpoint)
	if err != nil {
		return models.GeocodeResult{}, err
	}

	feature := gjson.GetBytes(body, "features.0")
	center := feature.Get("center").Array()
	if !feature.Exists() || len(center) < 2 {
		return models.GeocodeResult{}, domain.NotFoundError{Resource: "location"}
	}
	out = models.GeocodeResult{
		Longitude: center[0].Float(),
		Latitude:  center[1].Float(),
		PlaceName: feature.Get("place_name").String(),
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s GeocodeService) Reverse(ctx context.Context, lat, lon *float64) (models.ReverseGeocodeResult, error) {
	if lat == nil {
		return models.ReverseGeocodeResult{}, domain.ValidationError{Field: "latitude"}
	}
	if lon == nil {
		return models.ReverseGeocodeResult{}, domain.ValidationError{Field: "longitude"}
	}
	if *lat < -90 || *lat > 90 {
		return models.ReverseGeocodeResult{}, domain.ValidationError{Field: "latitude", Msg: "must be between -90 and 90"}
	}
	if *lon < -180 || *lon > 180 {
		return models.ReverseGeocodeResult{}, domain.ValidationError{Field: "longitude", Msg: "must be between -180 and 180"}
	}
	if strings.TrimSpace(s.Token) == "" {
		return models.ReverseGeocodeResult{}, domain.ConfigurationError{Setting: "MAPBOX_ACCESS_TOKEN"}
	}

	var out models.ReverseGeocodeResult
	key := cache.ReverseGeocodeKey(*lat, *lon)
	if s.cached(ctx, key, &out) {
		return out, nil
	}

	q := url.Values{}
	q.Set("access_token", s.Token)
	coords := strconv.FormatFloat(*lon, 'f', -1, 64) + "," + strconv.FormatFloat(*lat, 'f', -1, 64)
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		strings.TrimRight(s.BaseURL, "/"), coords, q.Encode())

	body, err := s.get(ctx, endpoint)
	if err != nil {
		return models.ReverseGeocodeResult{}, err
	}

	feature := gjson.GetBytes(body, "features.0")
	if !feature.Exists() {
		return models.ReverseGeocodeResult{}, domain.NotFoundError{Resource: "place"}
	}
	out.PlaceName = feature.Get("place_name").String()

	// The top feature and its context run from most to least specific.
	parts := append([]gjson.Result{feature}, feature.Get("context").Array()...)
	for _, p := range parts {
		id := p.Get("id").String()
		switch {
		case out.City == "" && strings.HasPrefix(id, "place."):
			out.City = p.Get("text").String()
		case out.Country == "" && strings.HasPrefix(id, "country."):
			out.Country = p.Get("text").String()
		}
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s GeocodeService) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	return doUpstream(s.Client, req, "mapbox", geocodeFailure)
}

func (s GeocodeService) cached(ctx context.Context, key string, dst any) bool {
	if s.Cache == nil {
		return false
	}
	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		utils.LogEvent(utils.RequestIDFrom(ctx), "geocode", "cache_get", "ignored: "+err.Error())
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		utils.LogEvent(utils.RequestIDFrom(ctx), "geocode", "cache_get", "bad entry: "+err.Error())
		return false
	}
	return true
}

func (s GeocodeService) store(ctx context.Context, key string, v any) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, string(raw), s.CacheTTL); err != nil {
		utils.LogEvent(utils.RequestIDFrom(ctx), "geocode", "cache_set", "ignored: "+err.Error())
	}
}
