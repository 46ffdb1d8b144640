package pipeline

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/slide"
	"github.com/matzehuels/slidelint/pkg/slide/pptx"
)

// Deck input formats.
const (
	DeckJSON = "json"
	DeckPPTX = "pptx"
)

// LoadDocument reads the deck at path. "-" reads JSON from stdin; other
// paths are dispatched on their extension.
func LoadDocument(path string, stdin io.Reader) (*slide.Document, error) {
	if err := errors.ValidateDeckPath(path); err != nil {
		return nil, err
	}
	if path == "-" {
		return slide.ReadJSON(stdin)
	}
	if strings.EqualFold(filepath.Ext(path), ".pptx") {
		return pptx.ReadFile(path)
	}
	return slide.ReadFile(path)
}

// DecodeDocument parses a deck held in memory.
func DecodeDocument(data []byte, format string) (*slide.Document, error) {
	switch strings.ToLower(format) {
	case "", DeckJSON:
		return slide.Decode(data)
	case DeckPPTX:
		return pptx.Decode(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported deck format %q (want json, pptx)", format)
}
