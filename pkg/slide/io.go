package slide

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/slidelint/pkg/errors"
)

// ReadJSON decodes a deck from r.
//
// Two shapes are accepted. A document:
//
//	{"layout": {"width": 10, "height": 5.625}, "slides": [{"elements": [...]}]}
//
// or a single bare slide:
//
//	{"layout": {...}, "elements": [...]}
//
// A bare slide is wrapped in a document but left detached, so its position
// is reported as unknown. Numbers are decoded as json.Number inside layout
// maps so large EMU values survive intact.
func ReadJSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data)
}

// Decode parses a deck from raw JSON; see ReadJSON.
func Decode(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode deck")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, ok := probe["slides"]; ok {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode document")
		}
		doc.Attach()
		return &doc, nil
	}

	if _, ok := probe["elements"]; ok {
		var s Slide
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode slide")
		}
		return &Document{Slides: []*Slide{&s}}, nil
	}

	return nil, errors.New(errors.ErrCodeInvalidInput, "deck must contain \"slides\" or \"elements\"")
}

// ReadFile reads and decodes the deck at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes d to w as indented JSON.
func WriteJSON(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// WriteFile writes d to path as indented JSON.
func WriteFile(d *Document, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, d); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Marshal returns the compact JSON encoding of d, used for content hashing.
func Marshal(d *Document) ([]byte, error) {
	return json.Marshal(d)
}
