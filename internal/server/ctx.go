package server

import (
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geobuildings/internal/config"
	"github.com/woozymasta/geobuildings/internal/render"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Converter *render.Converter
}

// NewServerContext builds the shared converter from cfg.
func NewServerContext(cfg *config.Config) *ServerContext {
	conv := render.NewConverter(render.Options{DefaultHeight: cfg.DefaultHeight})

	log.Info().
		Float64("default_height", conv.DefaultHeight()).
		Int64("max_body_bytes", cfg.Server.MaxBodyBytes).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:    cfg,
		Converter: conv,
	}
}

// converter returns the shared converter, or a new one when the request
// overrides the default height.
func (s *ServerContext) converter(height *float64) *render.Converter {
	if height == nil {
		return s.Converter
	}
	return render.NewConverter(render.Options{DefaultHeight: *height})
}
