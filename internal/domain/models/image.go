package models

type ImageSearchRequest struct {
	Query   string `json:"query"`
	PerPage int    `json:"per_page"`
}

// Image is the app-facing subset of an Unsplash photo.
type Image struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	Thumb           string `json:"thumb"`
	Alt             string `json:"alt"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
}
