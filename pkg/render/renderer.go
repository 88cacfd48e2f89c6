// Package render rasterizes slide pages into fixed-resolution images.
//
// A page is drawn in three passes onto a 1080x1920 surface: an opaque white
// base, the background image (scaled, positioned, and composited at the
// page's opacity), and the word-wrapped text block. If the background image
// cannot be loaded, the page falls back to a violet-to-pink gradient with
// the text redrawn centered — every page always yields a valid image.
//
// The output resolution and PNG format are a compatibility contract:
// downstream social-platform uploads depend on 1080x1920 PNG output.
package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/slidecast/slidecast/pkg/errors"
	"github.com/slidecast/slidecast/pkg/fonts"
	"github.com/slidecast/slidecast/pkg/slides"
)

// Format is the output image encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// Default output contract: 1080x1920 PNG at quality 0.95.
const (
	DefaultWidth   = 1080
	DefaultHeight  = 1920
	DefaultQuality = 0.95
)

// Text layout constants. The text block keeps a 60px margin on every side,
// giving a wrap budget of width-120. Line height is 1.2x the font size.
const (
	textPadding     = 60
	lineHeightRatio = 1.2
)

// Drop shadow parameters: semi-transparent black, blur 4, offset (2,2).
const (
	shadowSigma   = 2.0 // gaussian sigma approximating blur radius 4
	shadowAlpha   = 204 // 0.8 opacity
	shadowOffsetX = 2
	shadowOffsetY = 2
)

// Fallback gradient stops (violet to pink) and error placeholder red.
var (
	gradientTop    = color.RGBA{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF}
	gradientBottom = color.RGBA{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF}
	errorRed       = "#EF4444"
)

// Options configures one render call.
// Zero values select the defaults (1080x1920 PNG, quality 0.95).
type Options struct {
	Width   int
	Height  int
	Quality float64 // JPEG quality factor in (0,1]; ignored for PNG
	Format  Format
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = DefaultQuality
	}
	if o.Format == "" {
		o.Format = FormatPNG
	}
	return o
}

// Renderer draws slide pages. It is not safe for concurrent use: pages are
// rendered strictly sequentially to bound peak memory at one surface and
// one decoded background image in flight.
type Renderer struct {
	loader ImageLoader
}

// NewRenderer creates a renderer using the given image loader.
// Pass nil to load images over HTTP with default settings.
func NewRenderer(loader ImageLoader) *Renderer {
	if loader == nil {
		loader = NewHTTPLoader(nil)
	}
	return &Renderer{loader: loader}
}

// RenderPage rasterizes one page and returns the encoded image bytes.
//
// Background-image load failures never fail the call: the gradient fallback
// path produces a legible page instead. Encoding failure is a hard error.
func (r *Renderer) RenderPage(ctx context.Context, page slides.SlidePage, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	img, err := r.RenderImage(ctx, page, opts)
	if err != nil {
		return nil, err
	}
	return encode(img, opts)
}

// RenderImage rasterizes one page and returns the raw surface without
// encoding. Used by the preview server and by RenderPage.
func (r *Renderer) RenderImage(ctx context.Context, page slides.SlidePage, opts Options) (image.Image, error) {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	bg, err := r.loader.Load(ctx, page.Image)
	if err != nil {
		return renderFallback(page, opts)
	}
	drawBackground(dc, bg, page.ImageStyle)

	if err := drawText(dc, page.Text, page.TextStyle); err != nil {
		return renderFallback(page, opts)
	}
	return dc.Image(), nil
}

// drawBackground composites the background image onto the surface:
// scaled by ImageStyle.Scale, horizontally centered, vertically placed per
// ImageStyle.Position, at ImageStyle.Opacity.
func drawBackground(dc *gg.Context, bg image.Image, style slides.ImageStyle) {
	w, h := dc.Width(), dc.Height()

	sw := max(1, int(float64(bg.Bounds().Dx())*style.Scale+0.5))
	sh := max(1, int(float64(bg.Bounds().Dy())*style.Scale+0.5))
	scaled := imaging.Resize(bg, sw, sh, imaging.Lanczos)

	x := (w - sw) / 2
	var y int
	switch style.Position {
	case slides.ImageTop:
		y = 0
	case slides.ImageBottom:
		y = h - sh
	default:
		y = (h - sh) / 2
	}

	alpha := uint8(min(max(style.Opacity, 0), 1)*255 + 0.5)
	dst := dc.Image().(*image.RGBA)
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(dst, image.Rect(x, y, x+sw, y+sh), scaled, image.Point{}, mask, image.Point{}, draw.Over)
}

// drawText word-wraps and draws the page text. Shadow state is scoped to
// this pass: the shadow layer is drawn first, then the crisp text on top.
func drawText(dc *gg.Context, text string, style slides.TextStyle) error {
	face, err := fonts.Face(string(style.FontWeight), float64(style.FontSize))
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	w, h := dc.Width(), dc.Height()
	maxWidth := float64(w) - 2*textPadding
	lines := Wrap(text, maxWidth, func(s string) float64 {
		lw, _ := dc.MeasureString(s)
		return lw
	})
	if len(lines) == 0 {
		return nil
	}

	fontSize := float64(style.FontSize)
	lineHeight := fontSize * lineHeightRatio
	totalHeight := float64(len(lines)) * lineHeight

	var startY float64
	switch style.Position {
	case slides.PositionTop:
		startY = textPadding + fontSize
	case slides.PositionBottom:
		startY = float64(h) - textPadding - totalHeight + fontSize
	default:
		startY = (float64(h)-totalHeight)/2 + fontSize
	}

	var x, anchor float64
	switch style.TextAlign {
	case slides.AlignLeft:
		x, anchor = textPadding, 0
	case slides.AlignRight:
		x, anchor = float64(w)-textPadding, 1
	default:
		x, anchor = float64(w)/2, 0.5
	}

	if style.ShadowEnabled {
		drawTextShadow(dc, face, lines, x, startY, lineHeight, anchor)
	}

	dc.SetHexColor(style.Color)
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, startY+float64(i)*lineHeight, anchor, 0)
	}
	return nil
}

// drawTextShadow renders the text block in black on a transparent layer,
// blurs it, and composites it under the text at the fixed shadow offset.
func drawTextShadow(dc *gg.Context, face font.Face, lines []string, x, startY, lineHeight, anchor float64) {
	w, h := dc.Width(), dc.Height()

	layer := gg.NewContext(w, h)
	layer.SetFontFace(face)
	layer.SetRGB(0, 0, 0)
	for i, line := range lines {
		layer.DrawStringAnchored(line, x, startY+float64(i)*lineHeight, anchor, 0)
	}
	blurred := imaging.Blur(layer.Image(), shadowSigma)

	dst := dc.Image().(*image.RGBA)
	mask := image.NewUniform(color.Alpha{A: shadowAlpha})
	rect := image.Rect(shadowOffsetX, shadowOffsetY, w, h)
	draw.DrawMask(dst, rect, blurred, image.Point{}, mask, image.Point{}, draw.Over)
}

// renderFallback produces the gradient fallback page: a full-canvas
// diagonal violet-to-pink gradient with the text redrawn centered, white,
// bold, and shadowed. Guarantees a legible page when the background asset
// is unreachable.
func renderFallback(page slides.SlidePage, opts Options) (image.Image, error) {
	dc := gg.NewContext(opts.Width, opts.Height)

	grad := gg.NewLinearGradient(0, 0, float64(opts.Width), float64(opts.Height))
	grad.AddColorStop(0, gradientTop)
	grad.AddColorStop(1, gradientBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(opts.Width), float64(opts.Height))
	dc.Fill()

	style := slides.TextStyle{
		FontSize:      page.TextStyle.FontSize,
		Color:         "#ffffff",
		Position:      slides.PositionCenter,
		TextAlign:     slides.AlignCenter,
		FontWeight:    slides.WeightBold,
		ShadowEnabled: true,
	}
	if style.FontSize <= 0 {
		style.FontSize = 48
	}
	if err := drawText(dc, page.Text, style); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "fallback rendering")
	}
	return dc.Image(), nil
}

// ErrorPlaceholder produces the red substitute image used when a page fails
// to render during export: an #EF4444 canvas with the error text centered
// in white bold. Lines are split on newlines, not word-wrapped.
func ErrorPlaceholder(message string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor(errorRed)
	dc.Clear()

	face, err := fonts.Face(fonts.WeightBold, 48)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "error placeholder")
	}
	dc.SetFontFace(face)

	lines := strings.Split(message, "\n")
	const lineHeight = 60.0
	startY := (float64(opts.Height)-float64(len(lines))*lineHeight)/2 + 48
	x := float64(opts.Width) / 2

	drawTextShadow(dc, face, lines, x, startY, lineHeight, 0.5)
	dc.SetHexColor("#ffffff")
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, startY+float64(i)*lineHeight, 0.5, 0)
	}
	return encode(dc.Image(), opts)
}

// encode converts the finished surface to a compressed byte blob.
// Failure to encode is a hard error for the page.
func encode(img image.Image, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.Format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: int(opts.Quality*100 + 0.5)}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode jpeg")
		}
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode png")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", opts.Format)
	}
	return buf.Bytes(), nil
}
