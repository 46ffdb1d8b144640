package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/pipeline"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// deckInput is the deck part shared by every request body.
type deckInput struct {
	// Deck is an inline JSON deck or bare slide.
	Deck json.RawMessage `json:"deck,omitempty"`

	// Data is a base64-encoded deck file, .pptx unless Format says json.
	Data   []byte `json:"data,omitempty"`
	Format string `json:"format,omitempty"`
}

func (in deckInput) document() (*slide.Document, error) {
	switch {
	case len(in.Data) > 0:
		format := in.Format
		if format == "" {
			format = pipeline.DeckPPTX
		}
		return pipeline.DecodeDocument(in.Data, format)
	case len(in.Deck) > 0:
		return pipeline.DecodeDocument(in.Deck, pipeline.DeckJSON)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "request has no deck")
}

// decode reads a request into v. A JSON body decodes directly. A multipart
// form takes the deck from its "file" part and the other fields from an
// optional "request" part holding JSON.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any, in *deckInput) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return s.decodeMultipart(r, v, in)
	}
	return decodeJSON(r.Body, v)
}

func (s *Server) decodeMultipart(r *http.Request, v any, in *deckInput) error {
	if err := r.ParseMultipartForm(s.MaxBodyBytes); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse form")
	}
	if raw := r.FormValue("request"); raw != "" {
		if err := decodeJSON(strings.NewReader(raw), v); err != nil {
			return err
		}
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "file required in multipart/form-data")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read file")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if err := errors.ValidateDeckPath(header.Filename); err != nil {
		return err
	}
	in.Data = data
	in.Format = strings.TrimPrefix(ext, ".")
	in.Deck = nil
	return nil
}

func decodeJSON(r io.Reader, v any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

// slideNumber defaults an unset slide number to the first slide.
func slideNumber(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
