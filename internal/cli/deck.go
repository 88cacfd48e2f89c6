package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pkg/deckio"
	"github.com/slidecast/slidecast/pkg/slides"
)

// deckCommand creates the deck management command with its edit subcommands.
func (c *CLI) deckCommand() *cobra.Command {
	var deckFile string

	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Inspect and edit the deck file",
	}
	cmd.PersistentFlags().StringVarP(&deckFile, "deck", "d", defaultDeckFile, "deck file to operate on")

	cmd.AddCommand(c.deckInitCommand(&deckFile))
	cmd.AddCommand(c.deckShowCommand(&deckFile))
	cmd.AddCommand(c.deckSetTextCommand(&deckFile))
	cmd.AddCommand(c.deckSetStyleCommand(&deckFile))
	cmd.AddCommand(c.deckAddPageCommand(&deckFile))
	cmd.AddCommand(c.deckRemovePageCommand(&deckFile))
	cmd.AddCommand(c.deckMovePageCommand(&deckFile))
	cmd.AddCommand(c.deckRemoveSlideCommand(&deckFile))

	return cmd
}

func (c *CLI) deckInitCommand(deckFile *string) *cobra.Command {
	var name, description, audience string
	var features []string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty deck file with app details",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := slides.AppDetails{
				Name:        name,
				Description: description,
				Audience:    audience,
				Features:    features,
			}
			if err := app.Validate(); err != nil {
				return err
			}
			if err := deckio.ExportJSON(slides.NewDeck(app), *deckFile); err != nil {
				return err
			}
			printSuccess("Created deck for %s", StyleHighlight.Render(name))
			printFile(*deckFile)
			printNewline()
			printNextStep("Generate a slide", "slidecast generate Hype")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "app name")
	cmd.Flags().StringVar(&description, "description", "", "app description")
	cmd.Flags().StringVar(&audience, "audience", "", "target audience")
	cmd.Flags().StringSliceVar(&features, "features", nil, "key features")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func (c *CLI) deckShowCommand(deckFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print a summary of the deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := deckio.ImportJSON(*deckFile)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(deck.App.Name))
			printKeyValue("Description", deck.App.Description)
			if deck.App.Audience != "" {
				printKeyValue("Audience", deck.App.Audience)
			}
			printDeckStats(len(deck.Slides), deck.TotalPages())
			printNewline()

			for i, s := range deck.Slides {
				fmt.Printf("%s %s %s\n",
					StyleHighlight.Render(fmt.Sprintf("Slide %d", i+1)),
					StyleValue.Render(s.Name),
					StyleDim.Render("("+s.Strategy+")"))
				for j, p := range s.Pages {
					printDetail("Page %d: %s", j+1, p.Text)
				}
			}
			return nil
		},
	}
}

func (c *CLI) deckSetTextCommand(deckFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-text <slide> <page> <text>",
		Short: "Replace the text of a page",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editDeck(*deckFile, args[0], args[1], func(p *slides.SlidePage) error {
				p.Text = args[2]
				return nil
			})
		},
	}
}

func (c *CLI) deckSetStyleCommand(deckFile *string) *cobra.Command {
	var (
		fontSize               int
		color, position, align string
		weight                 string
		shadow                 bool
		opacity, scale         float64
		imagePosition          string
	)

	cmd := &cobra.Command{
		Use:   "set-style <slide> <page>",
		Short: "Adjust the text and image styling of a page",
		Long: `Adjust the text and image styling of a page. Only the flags given on the
command line are changed; everything else keeps its current value.

Examples:
  slidecast deck set-style 1 1 --font-size 64 --position top
  slidecast deck set-style 2 3 --opacity 0.5 --image-position bottom`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editDeck(*deckFile, args[0], args[1], func(p *slides.SlidePage) error {
				flags := cmd.Flags()
				if flags.Changed("font-size") {
					p.TextStyle.FontSize = fontSize
				}
				if flags.Changed("color") {
					p.TextStyle.Color = color
				}
				if flags.Changed("position") {
					p.TextStyle.Position = slides.TextPosition(position)
				}
				if flags.Changed("align") {
					p.TextStyle.TextAlign = slides.TextAlign(align)
				}
				if flags.Changed("weight") {
					p.TextStyle.FontWeight = slides.FontWeight(weight)
				}
				if flags.Changed("shadow") {
					p.TextStyle.ShadowEnabled = shadow
				}
				if flags.Changed("opacity") {
					p.ImageStyle.Opacity = opacity
				}
				if flags.Changed("scale") {
					p.ImageStyle.Scale = scale
				}
				if flags.Changed("image-position") {
					p.ImageStyle.Position = slides.ImagePosition(imagePosition)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&fontSize, "font-size", 0, "font size in pixels")
	cmd.Flags().StringVar(&color, "color", "", "text color (hex, e.g. #ffffff)")
	cmd.Flags().StringVar(&position, "position", "", "text position: top, center, bottom")
	cmd.Flags().StringVar(&align, "align", "", "text alignment: left, center, right")
	cmd.Flags().StringVar(&weight, "weight", "", "font weight: normal, semibold, bold")
	cmd.Flags().BoolVar(&shadow, "shadow", true, "enable the text drop shadow")
	cmd.Flags().Float64Var(&opacity, "opacity", 0, "background image opacity (0-1)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "background image scale factor")
	cmd.Flags().StringVar(&imagePosition, "image-position", "", "image position: top, center, bottom")

	return cmd
}

func (c *CLI) deckAddPageCommand(deckFile *string) *cobra.Command {
	var image, text string

	cmd := &cobra.Command{
		Use:   "add-page <slide>",
		Short: "Append a page to a slide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editSlide(*deckFile, args[0], func(s *slides.Slide) error {
				s.AddPage(slides.NewPage(image, text))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "background image URL or path")
	cmd.Flags().StringVar(&text, "text", "", "page text")

	return cmd
}

func (c *CLI) deckRemovePageCommand(deckFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-page <slide> <page>",
		Short: "Remove a page from a slide",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editSlide(*deckFile, args[0], func(s *slides.Slide) error {
				page, err := parseIndex(args[1], len(s.Pages), "page")
				if err != nil {
					return err
				}
				return s.RemovePage(page)
			})
		},
	}
}

func (c *CLI) deckMovePageCommand(deckFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "move-page <slide> <from> <to>",
		Short: "Reorder a page within a slide",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editSlide(*deckFile, args[0], func(s *slides.Slide) error {
				from, err := parseIndex(args[1], len(s.Pages), "page")
				if err != nil {
					return err
				}
				to, err := parseIndex(args[2], len(s.Pages), "page")
				if err != nil {
					return err
				}
				return s.MovePage(from, to)
			})
		},
	}
}

func (c *CLI) deckRemoveSlideCommand(deckFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-slide <slide>",
		Short: "Remove a slide from the deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := deckio.ImportJSON(*deckFile)
			if err != nil {
				return err
			}
			idx, err := parseIndex(args[0], len(deck.Slides), "slide")
			if err != nil {
				return err
			}
			if err := deck.RemoveSlide(idx); err != nil {
				return err
			}
			if err := deckio.ExportJSON(deck, *deckFile); err != nil {
				return err
			}
			printSuccess("Removed slide %s", args[0])
			printDeckStats(len(deck.Slides), deck.TotalPages())
			return nil
		},
	}
}

// editSlide loads the deck, applies edit to the addressed slide, and saves.
func (c *CLI) editSlide(deckFile, slideArg string, edit func(*slides.Slide) error) error {
	deck, err := deckio.ImportJSON(deckFile)
	if err != nil {
		return err
	}
	idx, err := parseIndex(slideArg, len(deck.Slides), "slide")
	if err != nil {
		return err
	}
	s, err := deck.Slide(idx)
	if err != nil {
		return err
	}
	if err := edit(s); err != nil {
		return err
	}
	if err := deckio.ExportJSON(deck, deckFile); err != nil {
		return err
	}
	printSuccess("Updated slide %s", slideArg)
	return nil
}

// editDeck loads the deck, applies edit to the addressed page, and saves.
func (c *CLI) editDeck(deckFile, slideArg, pageArg string, edit func(*slides.SlidePage) error) error {
	return c.editSlide(deckFile, slideArg, func(s *slides.Slide) error {
		idx, err := parseIndex(pageArg, len(s.Pages), "page")
		if err != nil {
			return err
		}
		page, err := s.Page(idx)
		if err != nil {
			return err
		}
		return edit(page)
	})
}

// parseIndex converts a 1-based command-line index into a 0-based one,
// validating it against the collection length.
func parseIndex(arg string, length int, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number %q", what, arg)
	}
	if n < 1 || n > length {
		return 0, fmt.Errorf("%s %d out of range (deck has %d)", what, n, length)
	}
	return n - 1, nil
}
