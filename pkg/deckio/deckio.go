// Package deckio provides JSON import and export for slide decks.
//
// The on-disk format is the deck structure itself: app details plus the
// slide list with every page's text, image reference, and styling. The
// format round-trips losslessly, so a deck can be exported, edited by
// hand or by external tooling, and re-imported for rendering.
package deckio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/slidecast/slidecast/pkg/slides"
)

// WriteJSON encodes a deck as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(d *slides.Deck, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a deck to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *slides.Deck, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ReadJSON decodes a JSON deck from r and validates it.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - The app details are incomplete (missing name or description)
//   - The deck holds more slides than the deck cap allows
//   - Any slide has no pages
//
// Pages with zero-valued styles get the default text and image styling,
// so hand-written decks only need to spell out what they change. The
// returned deck is independent of r; ReadJSON does not close r.
func ReadJSON(r io.Reader) (*slides.Deck, error) {
	var d slides.Deck
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := d.App.Validate(); err != nil {
		return nil, fmt.Errorf("app details: %w", err)
	}
	if len(d.Slides) > slides.MaxSlides {
		return nil, fmt.Errorf("deck holds %d slides, maximum is %d", len(d.Slides), slides.MaxSlides)
	}

	for i := range d.Slides {
		s := &d.Slides[i]
		if len(s.Pages) == 0 {
			return nil, fmt.Errorf("slide %d (%s): no pages", i+1, s.ID)
		}
		if s.ID == "" {
			s.ID = slides.NewSlideID()
		}
		for j := range s.Pages {
			p := &s.Pages[j]
			if p.TextStyle == (slides.TextStyle{}) {
				p.TextStyle = slides.DefaultTextStyle()
			}
			if p.ImageStyle == (slides.ImageStyle{}) {
				p.ImageStyle = slides.DefaultImageStyle()
			}
		}
	}

	return &d, nil
}

// ImportJSON reads a JSON file at path and returns the decoded deck.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path for context.
func ImportJSON(path string) (*slides.Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return d, nil
}
