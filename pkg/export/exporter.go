// Package export bundles rendered slide decks into ZIP archives with a
// JSON manifest describing the export.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/flate"

	"github.com/slidecast/slidecast/pkg/errors"
	"github.com/slidecast/slidecast/pkg/observability"
	"github.com/slidecast/slidecast/pkg/render"
	"github.com/slidecast/slidecast/pkg/slides"
)

// deflateLevel balances archive size against export latency for PNG-heavy
// payloads.
const deflateLevel = 6

// Progress reports export state after each unit of work. Current counts
// fully processed pages and only ever increases within one export.
type Progress struct {
	Current int
	Total   int
	Status  string
}

// ProgressFunc receives progress updates during an export. Callbacks run
// synchronously on the exporting goroutine.
type ProgressFunc func(Progress)

// PageRenderer produces encoded image bytes for a single page.
type PageRenderer interface {
	RenderPage(ctx context.Context, page slides.SlidePage, opts render.Options) ([]byte, error)
}

// Exporter renders every page of a deck and packages the results.
type Exporter struct {
	renderer PageRenderer
	opts     render.Options
	logger   *log.Logger
	now      func() time.Time
}

// NewExporter creates an exporter using the given renderer and per-page
// render options. Archive entries are always PNG, so the format option is
// overridden. A nil logger falls back to the package default.
func NewExporter(renderer PageRenderer, opts render.Options, logger *log.Logger) *Exporter {
	opts.Format = render.FormatPNG
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{
		renderer: renderer,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeName makes a string safe for file and directory names by
// replacing every non-alphanumeric character with a hyphen.
func SanitizeName(name string) string {
	return nonAlphanumeric.ReplaceAllString(name, "-")
}

// Manifest is the slide-config.json document included in every archive.
type Manifest struct {
	AppName     string          `json:"appName"`
	ExportDate  time.Time       `json:"exportDate"`
	TotalSlides int             `json:"totalSlides"`
	TotalPages  int             `json:"totalPages"`
	Slides      []SlideManifest `json:"slides"`
}

// SlideManifest summarizes one slide in the manifest.
type SlideManifest struct {
	SlideNumber int       `json:"slideNumber"`
	SlideName   string    `json:"slideName"`
	Strategy    string    `json:"strategy"`
	PageCount   int       `json:"pageCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Export renders all pages of the given slides and returns a ZIP archive
// containing one PNG per page plus the manifest. A page that fails to
// render is replaced by an error placeholder image so the archive always
// contains every page. onProgress may be nil.
func (e *Exporter) Export(ctx context.Context, deck []slides.Slide, appName string, onProgress ProgressFunc) (data []byte, err error) {
	if len(deck) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to export")
	}

	total := 0
	for _, s := range deck {
		total += len(s.Pages)
	}

	report := func(current int, status string) {
		if onProgress != nil {
			onProgress(Progress{Current: current, Total: total, Status: status})
		}
	}

	observability.Export().OnExportStart(ctx, appName, total)
	start := time.Now()
	defer func() {
		observability.Export().OnExportComplete(ctx, appName, len(data), time.Since(start), err)
	}()

	exportedAt := e.now()
	root := fmt.Sprintf("%s-slides-%s", SanitizeName(appName), exportedAt.Format("2006-01-02T15-04-05"))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, deflateLevel)
	})

	manifest := Manifest{
		AppName:     appName,
		ExportDate:  exportedAt,
		TotalSlides: len(deck),
		TotalPages:  total,
	}
	for i, s := range deck {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Slide %d", i+1)
		}
		manifest.Slides = append(manifest.Slides, SlideManifest{
			SlideNumber: i + 1,
			SlideName:   name,
			Strategy:    s.Strategy,
			PageCount:   len(s.Pages),
			CreatedAt:   s.CreatedAt,
		})
	}
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "failed to encode manifest")
	}
	if err := writeEntry(zw, root+"/slide-config.json", manifestData); err != nil {
		return nil, err
	}

	processed := 0
	for si, s := range deck {
		for pi, page := range s.Pages {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "export cancelled")
			}
			report(processed, fmt.Sprintf("Rendering Slide %d, Page %d...", si+1, pi+1))

			placeholder := false
			pageData, renderErr := e.renderer.RenderPage(ctx, page, e.opts)
			if renderErr != nil {
				e.logger.Warn("page render failed, substituting placeholder",
					"slide", si+1, "page", pi+1, "err", renderErr)
				placeholder = true
				pageData, renderErr = render.ErrorPlaceholder(
					fmt.Sprintf("Failed to render\nSlide %d, Page %d", si+1, pi+1), e.opts)
				if renderErr != nil {
					return nil, errors.Wrap(errors.ErrCodeExportFailed, renderErr, "failed to render placeholder")
				}
			}
			observability.Export().OnPageRendered(ctx, si+1, pi+1, placeholder)

			name := fmt.Sprintf("%s/Slide-%02d/page-%d.png", root, si+1, pi+1)
			if err := writeEntry(zw, name, pageData); err != nil {
				return nil, err
			}
			processed++
		}
	}

	report(total, "Generating ZIP file...")
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "failed to finalize archive")
	}

	e.logger.Info("export complete",
		"slides", len(deck), "pages", total, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "failed to create archive entry")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "failed to write archive entry")
	}
	return nil
}
