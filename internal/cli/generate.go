package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pkg/deckio"
	"github.com/slidecast/slidecast/pkg/slides"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	deckFile    string  // deck file to append to (created if missing)
	name        string  // app name for a new deck
	description string  // app description for a new deck
	audience    string  // target audience for a new deck
	features    string  // comma-separated key features for a new deck
	model       string  // text-generation model override
	seed        int     // fixed generation seed (0 picks per-call random seeds)
	temperature float64 // text-generation temperature override
	noCache     bool    // bypass the asset-search cache
}

// generateCommand creates the generate command.
//
// The command appends one generated slide per invocation. When the deck file
// does not exist yet, the app details flags are required and a fresh deck is
// created around them.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{deckFile: defaultDeckFile}

	cmd := &cobra.Command{
		Use:   "generate <strategy>",
		Short: "Generate a slide using a content strategy",
		Long: `Generate a four-page slide for the deck's app using the given content
strategy and append it to the deck file.

Available strategies can be listed with "slidecast strategies".

Examples:
  slidecast generate Hype --name FitTracker --description "tracks workouts"
  slidecast generate FOMO --deck myapp.json
  slidecast generate Educational --seed 42 --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.deckFile, "deck", "d", opts.deckFile, "deck file to append to")
	cmd.Flags().StringVar(&opts.name, "name", "", "app name (new decks only)")
	cmd.Flags().StringVar(&opts.description, "description", "", "app description (new decks only)")
	cmd.Flags().StringVar(&opts.audience, "audience", "", "target audience (new decks only)")
	cmd.Flags().StringVar(&opts.features, "features", "", "comma-separated key features (new decks only)")
	cmd.Flags().StringVar(&opts.model, "model", "", "text-generation model")
	cmd.Flags().IntVar(&opts.seed, "seed", 0, "fixed generation seed (0 for random)")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", 0, "text-generation temperature override")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the asset-search cache")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, strategyID string, opts generateOpts) error {
	deck, created, err := loadOrCreateDeck(opts)
	if err != nil {
		return err
	}
	if created {
		printInfo("Created new deck for %s", StyleHighlight.Render(deck.App.Name))
	}

	gen, err := c.newGenerator(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s slide...", strategyID))
	spinner.Start()

	prog := newProgress(c.Logger)
	slide, err := gen.GenerateSlide(ctx, deck.App, strategyID)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Generation failed: %v", err))
		return err
	}
	if spinner.Cancelled() {
		return ctx.Err()
	}

	if err := deck.AddSlide(slide); err != nil {
		spinner.StopWithError(fmt.Sprintf("Cannot add slide: %v", err))
		return err
	}
	if err := deckio.ExportJSON(deck, opts.deckFile); err != nil {
		spinner.StopWithError(fmt.Sprintf("Cannot save deck: %v", err))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Generated %s", slide.Name))
	prog.done("Slide generated")

	printDetail("Hook: %s", slide.Pages[0].Text)
	printDeckStats(len(deck.Slides), deck.TotalPages())
	printFile(opts.deckFile)
	printNewline()
	printNextStep("Export the deck", fmt.Sprintf("slidecast export --deck %s", opts.deckFile))
	return nil
}

// loadOrCreateDeck opens the deck file, or creates a fresh deck from the app
// details flags when the file does not exist. The second return reports
// whether a new deck was created.
func loadOrCreateDeck(opts generateOpts) (*slides.Deck, bool, error) {
	if _, err := os.Stat(opts.deckFile); err == nil {
		deck, err := deckio.ImportJSON(opts.deckFile)
		return deck, false, err
	}

	app := slides.AppDetails{
		Name:        opts.name,
		Description: opts.description,
		Audience:    opts.audience,
	}
	if opts.features != "" {
		for _, f := range strings.Split(opts.features, ",") {
			if f = strings.TrimSpace(f); f != "" {
				app.Features = append(app.Features, f)
			}
		}
	}
	if err := app.Validate(); err != nil {
		return nil, false, fmt.Errorf("deck file %s does not exist and app details are incomplete: %w", opts.deckFile, err)
	}
	return slides.NewDeck(app), true, nil
}
