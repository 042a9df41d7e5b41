package handlers

import (
	"travelplanner/internal/config"
	"travelplanner/internal/services"
)

// Handler serves every endpoint from injected services and configuration.
type Handler struct {
	Svc services.Services
	Env config.Env
}

func New(env config.Env, svc services.Services) *Handler {
	return &Handler{Svc: svc, Env: env}
}
