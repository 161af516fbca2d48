package main

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/woozymasta/geobuildings/internal/config"
	"github.com/woozymasta/geobuildings/internal/export"
	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/logger"
	"github.com/woozymasta/geobuildings/internal/render"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Height      *float64 `short:"H" long:"height"      env:"DEFAULT_HEIGHT" description:"Default extrusion height in meters, 0 disables extrusion"`
	OutDir      string   `short:"o" long:"out-dir"     env:"OUT_DIR"        description:"Output directory, stdout when empty"`
	Format      string   `short:"f" long:"format"      env:"OUT_FORMAT"     description:"Output format" choice:"json" choice:"yaml" choice:"kml" default:"json"`
	Preview     string   `long:"preview"               env:"PREVIEW"        description:"Also write a raster preview" choice:"webp" choice:"png"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY"    description:"Concurrency" default:"4"`
	Minify      bool     `short:"m" long:"minify"      env:"MINIFY"         description:"Minify JSON and KML output"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"GeoJSON files, stdin when none"`
	} `positional-args:"yes"`
}

type job struct {
	opts *Options
	cfg  *config.Config
	conv *render.Converter

	// stdout is shared by every file when no output directory is set.
	stdout sync.Mutex
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

	opts.Logger.Setup()

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
	if opts.Minify {
		cfg.KML.Minify = true
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Preview != "" && opts.OutDir == "" {
		log.Warn().Msg("Preview needs --out-dir, skipping previews")
	}

	j := &job{
		opts: &opts,
		cfg:  cfg,
		conv: render.NewConverter(render.Options{DefaultHeight: cfg.DefaultHeight}),
	}

	if len(opts.Args.Files) == 0 {
		if err := j.stdin(); err != nil {
			log.Fatal().Err(err).Msg("Failed to convert stdin")
		}
		return
	}

	log.Info().
		Int("files", len(opts.Args.Files)).
		Float64("default_height", cfg.DefaultHeight).
		Str("format", opts.Format).
		Msg("Starting conversion")

	var failed atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(opts.Concurrency)

	for _, path := range opts.Args.Files {
		g.Go(func() error {
			if err := j.file(path); err != nil {
				failed.Add(1)
				log.Error().Err(err).Str("file", path).Msg("Failed to convert file")
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		log.Error().Int32("failed", n).Msg("Conversion finished with errors")
		os.Exit(1)
	}

	log.Info().Msg("Conversion finished successfully")
}

func (j *job) stdin() error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	doc, err := geo.Decode(data)
	if err != nil {
		return err
	}

	set := j.conv.Convert(doc)
	defer set.Dispose()

	if j.opts.OutDir == "" {
		return j.write(os.Stdout, set)
	}

	return j.save("stdin", set)
}

func (j *job) file(path string) error {
	doc, err := geo.ReadFile(path)
	if err != nil {
		return err
	}

	set := j.conv.Convert(doc)
	defer set.Dispose()

	log.Info().
		Str("file", path).
		Int("objects", doc.Len()).
		Int("shapes", set.Len()).
		Interface("counts", set.Counts()).
		Msg("File converted")

	if j.opts.OutDir == "" {
		j.stdout.Lock()
		defer j.stdout.Unlock()
		return j.write(os.Stdout, set)
	}

	return j.save(path, set)
}

func (j *job) save(input string, set *render.RenderableSet) error {
	out := export.OutputPath(j.opts.OutDir, input, j.opts.Format)
	if err := export.WriteFile(out, func(w io.Writer) error { return j.write(w, set) }); err != nil {
		return err
	}
	log.Debug().Str("path", out).Msg("Output written")

	if j.opts.Preview == "" {
		return nil
	}

	out = export.OutputPath(j.opts.OutDir, input, j.opts.Preview)
	opts := export.NewPreviewOptions(j.cfg.Preview)

	return export.WriteFile(out, func(w io.Writer) error {
		return export.WritePreview(w, set, opts, j.opts.Preview)
	})
}

func (j *job) write(w io.Writer, set *render.RenderableSet) error {
	if j.opts.Format == export.FormatKML {
		return export.EncodeKML(w, set, j.cfg.DocumentName, j.cfg.KML.Minify)
	}
	return export.WriteSummary(w, set, j.opts.Format, j.opts.Minify)
}
