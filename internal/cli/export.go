package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pkg/deckio"
	"github.com/slidecast/slidecast/pkg/export"
	"github.com/slidecast/slidecast/pkg/slides"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	deckFile string // deck file to export
	output   string // output ZIP path (derived from the app name if empty)
	plain    bool   // log progress lines instead of the interactive bar
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{deckFile: defaultDeckFile}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the deck and package it as a ZIP archive",
		Long: `Render every page of every slide in the deck and package the images
together with a slide-config.json manifest into a ZIP archive.

Examples:
  slidecast export
  slidecast export --deck myapp.json -o myapp-slides.zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.deckFile, "deck", "d", opts.deckFile, "deck file to export")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output ZIP file (derived from app name if empty)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print progress as log lines instead of a progress bar")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts exportOpts) error {
	deck, err := deckio.ImportJSON(opts.deckFile)
	if err != nil {
		return err
	}
	if len(deck.Slides) == 0 {
		return fmt.Errorf("deck %s has no slides; run \"slidecast generate\" first", opts.deckFile)
	}

	exporter := c.newExporter()
	prog := newProgress(c.Logger)

	var data []byte
	if opts.plain {
		data, err = exporter.Export(ctx, deck.Slides, deck.App.Name, func(p export.Progress) {
			c.Logger.Infof("[%d/%d] %s", p.Current, p.Total, p.Status)
		})
	} else {
		data, err = c.exportWithTUI(ctx, exporter, deck)
	}
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = export.SanitizeName(deck.App.Name) + "-slides.zip"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Exported %d slides (%d pages)", len(deck.Slides), deck.TotalPages()))
	printSuccess("Deck exported")
	printFile(output)
	return nil
}

// exportWithTUI runs the export in the background while a bubbletea program
// shows the progress bar. Cancelling the TUI cancels the export context.
func (c *CLI) exportWithTUI(ctx context.Context, exporter *export.Exporter, deck *slides.Deck) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs := make(chan tea.Msg, 16)
	type result struct {
		data []byte
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		data, err := exporter.Export(ctx, deck.Slides, deck.App.Name, func(p export.Progress) {
			msgs <- progressMsg(p)
		})
		resultCh <- result{data, err}
		msgs <- exportDoneMsg{err: err}
	}()

	program := tea.NewProgram(NewExportModel(msgs, cancel), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return nil, err
	}

	r := <-resultCh
	return r.data, r.err
}
