package models

type GeocodeRequest struct {
	Location string `json:"location"`
}

type ReverseGeocodeRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceName string  `json:"place_name"`
}

type ReverseGeocodeResult struct {
	PlaceName string `json:"place_name"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
}
