package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/geobuildings/internal/config"
	"github.com/woozymasta/geobuildings/internal/logger"
	"github.com/woozymasta/geobuildings/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Addr       string   `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int      `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	Height     *float64 `short:"H" long:"height" env:"DEFAULT_HEIGHT" description:"Default extrusion height in meters, 0 disables extrusion"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.LoadOrDefault(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Height != nil {
		cfg.DefaultHeight = *opts.Height
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Invalid default height")
		}
	}

	srvCtx := server.NewServerContext(cfg)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/shapes", srvCtx.HandleShapes)
	mux.HandleFunc("/api/kml", srvCtx.HandleKML)
	mux.HandleFunc("/api/preview", srvCtx.HandlePreview)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Float64("default_height", cfg.DefaultHeight).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
