package slides

import (
	"testing"
	"time"

	"github.com/slidecast/slidecast/pkg/errors"
)

func testSlide(pages int) Slide {
	s := Slide{
		ID:        NewSlideID(),
		CreatedAt: time.Now(),
		Strategy:  "Hype",
	}
	for i := 0; i < pages; i++ {
		s.Pages = append(s.Pages, NewPage("/placeholder.png", "text"))
	}
	return s
}

func TestDeckCap(t *testing.T) {
	d := NewDeck(AppDetails{Name: "FitTracker", Description: "helps users track workouts"})

	for i := 0; i < MaxSlides; i++ {
		if err := d.AddSlide(testSlide(1)); err != nil {
			t.Fatalf("AddSlide %d failed: %v", i, err)
		}
	}

	err := d.AddSlide(testSlide(1))
	if !errors.Is(err, errors.ErrCodeDeckFull) {
		t.Fatalf("expected DECK_FULL, got %v", err)
	}
	if len(d.Slides) != MaxSlides {
		t.Errorf("deck should stay at %d slides, got %d", MaxSlides, len(d.Slides))
	}
}

func TestRemoveSlide(t *testing.T) {
	d := NewDeck(AppDetails{Name: "a", Description: "b"})
	_ = d.AddSlide(testSlide(2))
	_ = d.AddSlide(testSlide(3))

	if err := d.RemoveSlide(0); err != nil {
		t.Fatalf("RemoveSlide failed: %v", err)
	}
	if len(d.Slides) != 1 || len(d.Slides[0].Pages) != 3 {
		t.Errorf("wrong slide removed")
	}
	if err := d.RemoveSlide(5); !errors.Is(err, errors.ErrCodeSlideNotFound) {
		t.Errorf("expected SLIDE_NOT_FOUND, got %v", err)
	}
}

func TestRemoveLastPageRejected(t *testing.T) {
	s := testSlide(1)
	err := s.RemovePage(0)
	if !errors.Is(err, errors.ErrCodeLastPage) {
		t.Fatalf("expected LAST_PAGE, got %v", err)
	}
	if s.PageCount() != 1 {
		t.Errorf("page count should be unchanged, got %d", s.PageCount())
	}
}

func TestRemovePage(t *testing.T) {
	s := testSlide(3)
	victim := s.Pages[1].ID

	if err := s.RemovePage(1); err != nil {
		t.Fatalf("RemovePage failed: %v", err)
	}
	if s.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", s.PageCount())
	}
	for _, p := range s.Pages {
		if p.ID == victim {
			t.Error("removed page still present")
		}
	}
}

func TestMovePage(t *testing.T) {
	s := testSlide(4)
	ids := []string{s.Pages[0].ID, s.Pages[1].ID, s.Pages[2].ID, s.Pages[3].ID}

	if err := s.MovePage(0, 2); err != nil {
		t.Fatalf("MovePage failed: %v", err)
	}
	want := []string{ids[1], ids[2], ids[0], ids[3]}
	for i, p := range s.Pages {
		if p.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.ID)
		}
	}

	// Move back and verify identity order restored.
	if err := s.MovePage(2, 0); err != nil {
		t.Fatalf("MovePage failed: %v", err)
	}
	for i, p := range s.Pages {
		if p.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], p.ID)
		}
	}

	if err := s.MovePage(0, 9); !errors.Is(err, errors.ErrCodePageNotFound) {
		t.Errorf("expected PAGE_NOT_FOUND, got %v", err)
	}
}

func TestAppDetailsValidate(t *testing.T) {
	tests := []struct {
		name    string
		app     AppDetails
		wantErr bool
	}{
		{"valid", AppDetails{Name: "FitTracker", Description: "track workouts"}, false},
		{"missing name", AppDetails{Description: "track workouts"}, true},
		{"missing description", AppDetails{Name: "FitTracker"}, true},
		{"whitespace name", AppDetails{Name: "   ", Description: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.app.Validate()
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestStrategyCatalog(t *testing.T) {
	if len(Strategies()) != 5 {
		t.Fatalf("expected 5 strategies, got %d", len(Strategies()))
	}

	s, err := StrategyByID("Hype")
	if err != nil {
		t.Fatalf("StrategyByID failed: %v", err)
	}
	if s.Name != "Hype Strategy" {
		t.Errorf("unexpected strategy name: %s", s.Name)
	}
	if len(s.Examples) == 0 {
		t.Error("expected example phrases")
	}

	if _, err := StrategyByID("nope"); !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("expected INVALID_STRATEGY, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	ts := DefaultTextStyle()
	if ts.FontSize != 48 || ts.Color != "#ffffff" || ts.FontWeight != WeightBold {
		t.Errorf("unexpected default text style: %+v", ts)
	}
	if !ts.ShadowEnabled {
		t.Error("shadow should be enabled by default")
	}

	is := DefaultImageStyle()
	if is.Opacity != 0.8 || is.Scale != 1.0 || is.Position != ImageCenter {
		t.Errorf("unexpected default image style: %+v", is)
	}
}

func TestTotalPages(t *testing.T) {
	d := NewDeck(AppDetails{Name: "a", Description: "b"})
	_ = d.AddSlide(testSlide(4))
	_ = d.AddSlide(testSlide(2))
	if got := d.TotalPages(); got != 6 {
		t.Errorf("expected 6 total pages, got %d", got)
	}
}
