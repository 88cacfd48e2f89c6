package slides

import (
	"github.com/slidecast/slidecast/pkg/errors"
)

// MaxSlides caps the number of slides in a deck.
const MaxSlides = 10

// Deck is the ordered collection of slides for one app, together with the
// app details they were generated from. It exists only for the session (or
// a working file between CLI invocations); there is no server-side storage.
type Deck struct {
	App    AppDetails `json:"app"`
	Slides []Slide    `json:"slides"`
}

// NewDeck creates an empty deck for the given app.
func NewDeck(app AppDetails) *Deck {
	return &Deck{App: app}
}

// AddSlide appends a slide to the deck. Adding beyond [MaxSlides] is
// rejected and leaves the deck unchanged.
func (d *Deck) AddSlide(s Slide) error {
	if len(d.Slides) >= MaxSlides {
		return errors.New(errors.ErrCodeDeckFull, "deck is limited to %d slides", MaxSlides)
	}
	d.Slides = append(d.Slides, s)
	return nil
}

// RemoveSlide deletes the slide at index.
func (d *Deck) RemoveSlide(index int) error {
	if index < 0 || index >= len(d.Slides) {
		return errors.New(errors.ErrCodeSlideNotFound, "no slide at index %d", index)
	}
	d.Slides = append(d.Slides[:index], d.Slides[index+1:]...)
	return nil
}

// Slide returns a pointer to the slide at index for in-place mutation.
func (d *Deck) Slide(index int) (*Slide, error) {
	if index < 0 || index >= len(d.Slides) {
		return nil, errors.New(errors.ErrCodeSlideNotFound, "no slide at index %d", index)
	}
	return &d.Slides[index], nil
}

// TotalPages returns the page count across all slides.
func (d *Deck) TotalPages() int {
	total := 0
	for i := range d.Slides {
		total += len(d.Slides[i].Pages)
	}
	return total
}

// AddPage appends a page to the slide.
func (s *Slide) AddPage(p SlidePage) {
	s.Pages = append(s.Pages, p)
}

// RemovePage deletes the page at index. Removing the last remaining page is
// rejected: a slide must always retain at least one page.
func (s *Slide) RemovePage(index int) error {
	if index < 0 || index >= len(s.Pages) {
		return errors.New(errors.ErrCodePageNotFound, "no page at index %d", index)
	}
	if len(s.Pages) == 1 {
		return errors.New(errors.ErrCodeLastPage, "slide must retain at least one page")
	}
	s.Pages = append(s.Pages[:index], s.Pages[index+1:]...)
	return nil
}

// MovePage reorders a page by removing it from one index and reinserting it
// at another. Both indices refer to positions in the current order.
func (s *Slide) MovePage(from, to int) error {
	if from < 0 || from >= len(s.Pages) {
		return errors.New(errors.ErrCodePageNotFound, "no page at index %d", from)
	}
	if to < 0 || to >= len(s.Pages) {
		return errors.New(errors.ErrCodePageNotFound, "no page at index %d", to)
	}
	if from == to {
		return nil
	}
	p := s.Pages[from]
	s.Pages = append(s.Pages[:from], s.Pages[from+1:]...)
	s.Pages = append(s.Pages[:to], append([]SlidePage{p}, s.Pages[to:]...)...)
	return nil
}

// Page returns a pointer to the page at index for in-place mutation.
func (s *Slide) Page(index int) (*SlidePage, error) {
	if index < 0 || index >= len(s.Pages) {
		return nil, errors.New(errors.ErrCodePageNotFound, "no page at index %d", index)
	}
	return &s.Pages[index], nil
}
