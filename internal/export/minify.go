package export

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"
	minxml "github.com/tdewolff/minify/v2/xml"
)

const (
	mediaXML  = "text/xml"
	mediaJSON = "application/json"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mediaXML, minxml.Minify)
	m.AddFunc(mediaJSON, minjson.Minify)
	return m
}

// minifyTo renders with write into a buffer and copies the minified result to w.
func minifyTo(w io.Writer, mediatype string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}

	if err := minifier.Minify(mediatype, w, &buf); err != nil {
		return errors.Wrapf(err, "minify %s", mediatype)
	}

	return nil
}
