package models

type ItineraryRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
	Travelers   int      `json:"travelers"`
}
