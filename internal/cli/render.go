package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pkg/deckio"
	"github.com/slidecast/slidecast/pkg/render"
	"github.com/slidecast/slidecast/pkg/slides"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	deckFile string  // deck file to read
	output   string  // output image path
	format   string  // output format: png or jpeg
	width    int     // output width in pixels
	height   int     // output height in pixels
	quality  float64 // JPEG quality in (0,1]
}

// renderCommand creates the render command for producing page images
// without a full export.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{deckFile: defaultDeckFile, format: string(render.FormatPNG)}

	cmd := &cobra.Command{
		Use:   "render [slide] [page]",
		Short: "Render deck pages to image files",
		Long: `Render pages of the deck to image files for inspection without running
a full export. With no arguments every page is rendered; with a slide
number every page of that slide is rendered.

Examples:
  slidecast render
  slidecast render 2
  slidecast render 2 3 -o preview.jpg --format jpeg --quality 0.9`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.deckFile, "deck", "d", opts.deckFile, "deck file to read")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, single page only (derived from slide/page if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png, jpeg")
	cmd.Flags().IntVar(&opts.width, "width", 0, "output width (default 1080)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "output height (default 1920)")
	cmd.Flags().Float64Var(&opts.quality, "quality", 0, "JPEG quality (default 0.95)")

	return cmd
}

// renderTarget identifies one page to render, with 1-based display numbers.
type renderTarget struct {
	slide int
	page  int
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	deck, err := deckio.ImportJSON(opts.deckFile)
	if err != nil {
		return err
	}

	targets, err := resolveTargets(deck, args)
	if err != nil {
		return err
	}
	if opts.output != "" && len(targets) > 1 {
		return fmt.Errorf("--output requires a single slide and page")
	}

	renderOptions := c.renderOptions()
	renderOptions.Format = render.Format(opts.format)
	if opts.width > 0 {
		renderOptions.Width = opts.width
	}
	if opts.height > 0 {
		renderOptions.Height = opts.height
	}
	if opts.quality > 0 {
		renderOptions.Quality = opts.quality
	}

	prog := newProgress(c.Logger)
	renderer := render.NewRenderer(render.NewHTTPLoader(nil))

	for _, t := range targets {
		s, err := deck.Slide(t.slide - 1)
		if err != nil {
			return err
		}
		page, err := s.Page(t.page - 1)
		if err != nil {
			return err
		}
		data, err := renderer.RenderPage(ctx, *page, renderOptions)
		if err != nil {
			return err
		}

		output := opts.output
		if output == "" {
			output = fmt.Sprintf("slide-%d-page-%d.%s", t.slide, t.page, opts.format)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printFile(output)
	}

	if len(targets) == 1 {
		prog.done("Page rendered")
		printSuccess("Rendered slide %d page %d", targets[0].slide, targets[0].page)
	} else {
		prog.done("Pages rendered")
		printSuccess("Rendered %d pages", len(targets))
	}
	return nil
}

// resolveTargets expands the positional arguments into the pages to render:
// no arguments means every page, one argument means every page of that
// slide, two arguments select a single page.
func resolveTargets(deck *slides.Deck, args []string) ([]renderTarget, error) {
	var targets []renderTarget
	switch len(args) {
	case 0:
		for si, s := range deck.Slides {
			for pi := range s.Pages {
				targets = append(targets, renderTarget{slide: si + 1, page: pi + 1})
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("deck has no slides")
		}
	case 1:
		slideIdx, err := parseIndex(args[0], len(deck.Slides), "slide")
		if err != nil {
			return nil, err
		}
		s, err := deck.Slide(slideIdx)
		if err != nil {
			return nil, err
		}
		for pi := range s.Pages {
			targets = append(targets, renderTarget{slide: slideIdx + 1, page: pi + 1})
		}
	default:
		slideIdx, err := parseIndex(args[0], len(deck.Slides), "slide")
		if err != nil {
			return nil, err
		}
		s, err := deck.Slide(slideIdx)
		if err != nil {
			return nil, err
		}
		pageIdx, err := parseIndex(args[1], len(s.Pages), "page")
		if err != nil {
			return nil, err
		}
		targets = append(targets, renderTarget{slide: slideIdx + 1, page: pageIdx + 1})
	}
	return targets, nil
}
