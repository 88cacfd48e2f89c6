// Package slides defines the data model for short-form vertical slide decks:
// app details, presentation styles, pages, slides, and the deck that owns
// them. Slides and pages are created by the generator, mutated by edit
// operations, and read by the exporter.
package slides

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slidecast/slidecast/pkg/errors"
)

// AppDetails describes the app being promoted. Name and Description are
// required before any generation proceeds; Audience and Features are
// free-text hints for the content generator.
type AppDetails struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Audience    string   `json:"audience,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// Validate rejects missing required fields before generation begins.
func (a AppDetails) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "app name is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "app description is required")
	}
	return nil
}

// TextPosition is the vertical placement of the text block on a page.
type TextPosition string

// TextAlign is the horizontal anchor for text lines.
type TextAlign string

// FontWeight selects the typeface weight.
type FontWeight string

// Text placement and style enumerations.
const (
	PositionTop    TextPosition = "top"
	PositionCenter TextPosition = "center"
	PositionBottom TextPosition = "bottom"

	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"

	WeightNormal   FontWeight = "normal"
	WeightSemibold FontWeight = "semibold"
	WeightBold     FontWeight = "bold"
)

// TextStyle describes how a page's text is presented.
type TextStyle struct {
	FontSize      int          `json:"fontSize"` // points, 24-72 typical
	Color         string       `json:"color"`    // hex, e.g. "#ffffff"
	Position      TextPosition `json:"position"`
	TextAlign     TextAlign    `json:"textAlign"`
	FontWeight    FontWeight   `json:"fontWeight"`
	ShadowEnabled bool         `json:"shadowEnabled"`
}

// ImagePosition is the vertical placement of the background image.
type ImagePosition string

// Background image placement values.
const (
	ImageCenter ImagePosition = "center"
	ImageTop    ImagePosition = "top"
	ImageBottom ImagePosition = "bottom"
)

// ImageStyle describes how a page's background image is presented.
type ImageStyle struct {
	Opacity  float64       `json:"opacity"` // [0.1, 1.0]
	Scale    float64       `json:"scale"`   // [0.5, 2.0]
	Position ImagePosition `json:"position"`
}

// DefaultTextStyle returns the default presentation for generated pages.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:      48,
		Color:         "#ffffff",
		Position:      PositionCenter,
		TextAlign:     AlignCenter,
		FontWeight:    WeightBold,
		ShadowEnabled: true,
	}
}

// DefaultImageStyle returns the default background presentation.
func DefaultImageStyle() ImageStyle {
	return ImageStyle{
		Opacity:  0.8,
		Scale:    1.0,
		Position: ImageCenter,
	}
}

// HookProvenance records the audit trail for an AI-generated opening line:
// the original inspiration hook, the customized result, and the prompt and
// strategy used to produce it. Attached only to a slide's first page.
type HookProvenance struct {
	OriginalHook        string   `json:"originalHook"`
	OriginalKey         string   `json:"originalKey"`
	OriginalScore       float64  `json:"originalScore"`
	OriginalNotes       string   `json:"originalNotes,omitempty"`
	OriginalTags        []string `json:"originalTags,omitempty"`
	CustomizedHook      string   `json:"customizedHook"`
	Strategy            string   `json:"strategy"`
	CustomizationPrompt string   `json:"customizationPrompt"`
}

// SlidePage is one renderable page: a background image reference plus styled
// text. Pages are owned exclusively by their parent Slide and never shared.
type SlidePage struct {
	ID             string          `json:"id"`
	Image          string          `json:"image"` // URL or local file reference
	ImageScore     float64         `json:"imageScore,omitempty"`
	Text           string          `json:"text"`
	TextStyle      TextStyle       `json:"textStyle"`
	ImageStyle     ImageStyle      `json:"imageStyle"`
	HookProvenance *HookProvenance `json:"hookProvenance,omitempty"`
}

// NewPage creates a page with a fresh ID and default styling.
func NewPage(image, text string) SlidePage {
	return SlidePage{
		ID:         "page-" + uuid.NewString(),
		Image:      image,
		Text:       text,
		TextStyle:  DefaultTextStyle(),
		ImageStyle: DefaultImageStyle(),
	}
}

// Slide is an ordered sequence of pages produced for one strategy.
// Order is significant; a slide always retains at least one page.
type Slide struct {
	ID        string      `json:"id"`
	Pages     []SlidePage `json:"pages"`
	CreatedAt time.Time   `json:"createdAt"`
	Strategy  string      `json:"strategy"`
	Name      string      `json:"name,omitempty"`
}

// NewSlideID returns a fresh slide identifier.
func NewSlideID() string {
	return "slide-" + uuid.NewString()
}

// PageCount returns the number of pages in the slide.
func (s *Slide) PageCount() int {
	return len(s.Pages)
}
