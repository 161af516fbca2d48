// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geobuildings/internal/export"
	"github.com/woozymasta/geobuildings/internal/geo"
	"github.com/woozymasta/geobuildings/internal/render"
)

const (
	contentTypeKML  = "application/vnd.google-earth.kml+xml"
	contentTypeJSON = "application/json"
	contentTypeWebP = "image/webp"
)

// HandleShapes converts the GeoJSON body and answers with the JSON shape summary.
func (s *ServerContext) HandleShapes(w http.ResponseWriter, r *http.Request) {
	set, ok := s.convert(w, r)
	if !ok {
		return
	}
	defer set.Dispose()

	var buf bytes.Buffer
	if err := export.WriteSummary(&buf, set, export.FormatJSON, false); err != nil {
		log.Error().Err(err).Msg("Failed to encode summary")
		http.Error(w, "encode summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	_, _ = w.Write(buf.Bytes())
}

// HandleKML converts the GeoJSON body and answers with a KML document.
func (s *ServerContext) HandleKML(w http.ResponseWriter, r *http.Request) {
	set, ok := s.convert(w, r)
	if !ok {
		return
	}
	defer set.Dispose()

	name := r.URL.Query().Get("name")
	if name == "" {
		name = s.Config.DocumentName
	}

	var buf bytes.Buffer
	if err := export.EncodeKML(&buf, set, name, s.Config.KML.Minify); err != nil {
		log.Error().Err(err).Msg("Failed to encode KML")
		http.Error(w, "encode kml", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeKML)
	_, _ = w.Write(buf.Bytes())
}

// HandlePreview converts the GeoJSON body and answers with a webp preview.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	set, ok := s.convert(w, r)
	if !ok {
		return
	}
	defer set.Dispose()

	var buf bytes.Buffer
	if err := export.WritePreview(&buf, set, export.NewPreviewOptions(s.Config.Preview), "webp"); err != nil {
		log.Error().Err(err).Msg("Failed to render preview")
		http.Error(w, "render preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeWebP)
	_, _ = w.Write(buf.Bytes())
}

// convert reads and converts the request body. On failure the error
// response is already written and ok is false.
func (s *ServerContext) convert(w http.ResponseWriter, r *http.Request) (set *render.RenderableSet, ok bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	height, err := heightParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Config.Server.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "read body", http.StatusBadRequest)
		return nil, false
	}

	doc, err := geo.Decode(data)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected request body")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	set = s.converter(height).Convert(doc)
	set.PreRender(nil)

	log.Debug().
		Int("objects", doc.Len()).
		Int("shapes", set.Len()).
		Msg("Request converted")

	return set, true
}

func heightParam(r *http.Request) (*float64, error) {
	raw := r.URL.Query().Get("height")
	if raw == "" {
		return nil, nil
	}

	h, err := strconv.ParseFloat(raw, 64)
	if err != nil || h < 0 {
		return nil, errors.New("height must be a non-negative number")
	}

	return &h, nil
}
