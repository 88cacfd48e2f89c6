package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/slidecast/slidecast/pkg/deckio"
	"github.com/slidecast/slidecast/pkg/slides"
)

// runCommand executes the CLI with the given arguments.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

// initDeck creates a deck file with one two-page slide for editing tests.
func initDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.json")

	deck := slides.NewDeck(slides.AppDetails{
		Name:        "FitTracker",
		Description: "helps users track workouts",
	})
	s := slides.Slide{
		ID:       slides.NewSlideID(),
		Strategy: "Hype",
		Name:     "FitTracker - Hype Slide",
		Pages: []slides.SlidePage{
			slides.NewPage("", "first page"),
			slides.NewPage("", "second page"),
		},
	}
	if err := deck.AddSlide(s); err != nil {
		t.Fatal(err)
	}
	if err := deckio.ExportJSON(deck, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadDeck(t *testing.T, path string) *slides.Deck {
	t.Helper()
	deck, err := deckio.ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	return deck
}

func TestDeckInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.json")

	err := runCommand(t, "deck", "init", "--deck", path,
		"--name", "FitTracker", "--description", "tracks workouts",
		"--audience", "athletes", "--features", "tracking,insights")
	if err != nil {
		t.Fatalf("deck init failed: %v", err)
	}

	deck := loadDeck(t, path)
	if deck.App.Name != "FitTracker" || deck.App.Audience != "athletes" {
		t.Errorf("unexpected app details: %+v", deck.App)
	}
	if len(deck.App.Features) != 2 {
		t.Errorf("expected 2 features, got %v", deck.App.Features)
	}
	if len(deck.Slides) != 0 {
		t.Errorf("new deck should be empty, got %d slides", len(deck.Slides))
	}
}

func TestDeckInitRequiresDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.json")
	if err := runCommand(t, "deck", "init", "--deck", path, "--name", "x"); err == nil {
		t.Error("deck init without a description should fail")
	}
}

func TestDeckSetText(t *testing.T) {
	path := initDeck(t)

	if err := runCommand(t, "deck", "set-text", "--deck", path, "1", "2", "updated copy"); err != nil {
		t.Fatalf("set-text failed: %v", err)
	}

	deck := loadDeck(t, path)
	if got := deck.Slides[0].Pages[1].Text; got != "updated copy" {
		t.Errorf("text not updated: %q", got)
	}
	if got := deck.Slides[0].Pages[0].Text; got != "first page" {
		t.Errorf("other page should be untouched: %q", got)
	}
}

func TestDeckSetStyle(t *testing.T) {
	path := initDeck(t)

	err := runCommand(t, "deck", "set-style", "--deck", path, "1", "1",
		"--font-size", "64", "--position", "top", "--opacity", "0.5")
	if err != nil {
		t.Fatalf("set-style failed: %v", err)
	}

	deck := loadDeck(t, path)
	p := deck.Slides[0].Pages[0]
	if p.TextStyle.FontSize != 64 {
		t.Errorf("font size not updated: %d", p.TextStyle.FontSize)
	}
	if p.TextStyle.Position != slides.PositionTop {
		t.Errorf("position not updated: %s", p.TextStyle.Position)
	}
	if p.ImageStyle.Opacity != 0.5 {
		t.Errorf("opacity not updated: %v", p.ImageStyle.Opacity)
	}
	// Flags not given keep their values.
	if p.TextStyle.Color != slides.DefaultTextStyle().Color {
		t.Errorf("color should be untouched: %s", p.TextStyle.Color)
	}
}

func TestDeckAddAndMovePage(t *testing.T) {
	path := initDeck(t)

	if err := runCommand(t, "deck", "add-page", "--deck", path, "1", "--text", "third page"); err != nil {
		t.Fatalf("add-page failed: %v", err)
	}
	if err := runCommand(t, "deck", "move-page", "--deck", path, "1", "3", "1"); err != nil {
		t.Fatalf("move-page failed: %v", err)
	}

	deck := loadDeck(t, path)
	pages := deck.Slides[0].Pages
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	want := []string{"third page", "first page", "second page"}
	for i, w := range want {
		if pages[i].Text != w {
			t.Errorf("page %d: expected %q, got %q", i, w, pages[i].Text)
		}
	}
}

func TestDeckRemovePage(t *testing.T) {
	path := initDeck(t)

	if err := runCommand(t, "deck", "remove-page", "--deck", path, "1", "1"); err != nil {
		t.Fatalf("remove-page failed: %v", err)
	}

	deck := loadDeck(t, path)
	if len(deck.Slides[0].Pages) != 1 || deck.Slides[0].Pages[0].Text != "second page" {
		t.Errorf("unexpected pages after removal: %+v", deck.Slides[0].Pages)
	}

	// The last page cannot be removed.
	if err := runCommand(t, "deck", "remove-page", "--deck", path, "1", "1"); err == nil {
		t.Error("removing the last page should fail")
	}
}

func TestDeckRemoveSlide(t *testing.T) {
	path := initDeck(t)

	if err := runCommand(t, "deck", "remove-slide", "--deck", path, "1"); err != nil {
		t.Fatalf("remove-slide failed: %v", err)
	}
	if deck := loadDeck(t, path); len(deck.Slides) != 0 {
		t.Errorf("slide not removed: %d slides left", len(deck.Slides))
	}
}

func TestDeckOutOfRange(t *testing.T) {
	path := initDeck(t)

	if err := runCommand(t, "deck", "set-text", "--deck", path, "5", "1", "x"); err == nil {
		t.Error("out-of-range slide index should fail")
	}
	if err := runCommand(t, "deck", "set-text", "--deck", path, "1", "9", "x"); err == nil {
		t.Error("out-of-range page index should fail")
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		length  int
		want    int
		wantErr bool
	}{
		{"1", 3, 0, false},
		{"3", 3, 2, false},
		{"0", 3, 0, true},
		{"4", 3, 0, true},
		{"x", 3, 0, true},
		{"-1", 3, 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.arg, tt.length, "slide")
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q, %d): err = %v, wantErr %v", tt.arg, tt.length, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseIndex(%q, %d) = %d, want %d", tt.arg, tt.length, got, tt.want)
		}
	}
}

func TestLoadOrCreateDeck(t *testing.T) {
	t.Run("missing file with details", func(t *testing.T) {
		opts := generateOpts{
			deckFile:    filepath.Join(t.TempDir(), "deck.json"),
			name:        "FitTracker",
			description: "tracks workouts",
			features:    "tracking, insights ,",
		}
		deck, created, err := loadOrCreateDeck(opts)
		if err != nil {
			t.Fatal(err)
		}
		if !created {
			t.Error("expected a new deck")
		}
		if len(deck.App.Features) != 2 {
			t.Errorf("features not parsed: %v", deck.App.Features)
		}
	})

	t.Run("missing file without details", func(t *testing.T) {
		opts := generateOpts{deckFile: filepath.Join(t.TempDir(), "deck.json")}
		if _, _, err := loadOrCreateDeck(opts); err == nil {
			t.Error("expected an error for incomplete app details")
		}
	})

	t.Run("existing file", func(t *testing.T) {
		path := initDeck(t)
		deck, created, err := loadOrCreateDeck(generateOpts{deckFile: path})
		if err != nil {
			t.Fatal(err)
		}
		if created {
			t.Error("existing deck should not be recreated")
		}
		if len(deck.Slides) != 1 {
			t.Errorf("unexpected deck: %d slides", len(deck.Slides))
		}
	})
}
