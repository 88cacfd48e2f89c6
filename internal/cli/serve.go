package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pkg/deckio"
	"github.com/slidecast/slidecast/pkg/render"
	"github.com/slidecast/slidecast/pkg/slides"
)

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		deckFile string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deck as rendered images over HTTP",
		Long: `Start a local HTTP server that renders deck pages on demand.

Routes:
  GET /                              deck summary
  GET /strategies                    strategy catalog
  GET /slides/{slide}/pages/{page}   rendered page as PNG

Pages are re-read from the deck file on every request, so edits show up
on refresh without restarting the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), deckFile, addr)
		},
	}

	cmd.Flags().StringVarP(&deckFile, "deck", "d", defaultDeckFile, "deck file to serve")
	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8080", "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, deckFile, addr string) error {
	// Fail fast on a broken deck before binding the listener.
	if _, err := deckio.ImportJSON(deckFile); err != nil {
		return err
	}

	renderer := render.NewRenderer(render.NewHTTPLoader(nil))
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.previewRouter(deckFile, renderer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printSuccess("Serving %s", deckFile)
	printDetail("http://%s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// previewRouter builds the chi router for the preview server.
func (c *CLI) previewRouter(deckFile string, renderer *render.Renderer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		deck, err := deckio.ImportJSON(deckFile)
		if err != nil {
			httpError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, deckSummary(deck))
	})

	r.Get("/strategies", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, slides.Strategies())
	})

	r.Get("/slides/{slide}/pages/{page}", func(w http.ResponseWriter, req *http.Request) {
		deck, err := deckio.ImportJSON(deckFile)
		if err != nil {
			httpError(w, http.StatusInternalServerError, err)
			return
		}
		page, err := resolvePage(deck, chi.URLParam(req, "slide"), chi.URLParam(req, "page"))
		if err != nil {
			httpError(w, http.StatusNotFound, err)
			return
		}

		opts := c.renderOptions()
		data, err := renderer.RenderPage(req.Context(), *page, opts)
		if err != nil {
			// Surface render failures the same way an export would.
			if data, err = render.ErrorPlaceholder("Failed to render page", opts); err != nil {
				httpError(w, http.StatusInternalServerError, err)
				return
			}
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	})

	return r
}

// summary is the JSON document served at the root route.
type summary struct {
	App        slides.AppDetails `json:"app"`
	SlideCount int               `json:"slideCount"`
	PageCount  int               `json:"pageCount"`
	Slides     []slideSummary    `json:"slides"`
}

type slideSummary struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Strategy string   `json:"strategy"`
	Pages    []string `json:"pages"`
}

func deckSummary(deck *slides.Deck) summary {
	out := summary{
		App:        deck.App,
		SlideCount: len(deck.Slides),
		PageCount:  deck.TotalPages(),
	}
	for i, s := range deck.Slides {
		entry := slideSummary{Number: i + 1, Name: s.Name, Strategy: s.Strategy}
		for j := range s.Pages {
			entry.Pages = append(entry.Pages, fmt.Sprintf("/slides/%d/pages/%d", i+1, j+1))
		}
		out.Slides = append(out.Slides, entry)
	}
	return out
}

func resolvePage(deck *slides.Deck, slideArg, pageArg string) (*slides.SlidePage, error) {
	slideIdx, err := parseIndex(slideArg, len(deck.Slides), "slide")
	if err != nil {
		return nil, err
	}
	s, err := deck.Slide(slideIdx)
	if err != nil {
		return nil, err
	}
	pageIdx, err := parseIndex(pageArg, len(s.Pages), "page")
	if err != nil {
		return nil, err
	}
	return s.Page(pageIdx)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil && !errors.Is(err, context.Canceled) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func httpError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
