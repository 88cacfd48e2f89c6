// Package fonts provides typeface handling for page rendering.
//
// The Go font family from golang.org/x/image is compiled into the binary,
// making rendering work without external font files. Three weights are
// exposed, matching the text style model: normal, semibold, and bold.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight names accepted by [Face].
const (
	WeightNormal   = "normal"
	WeightSemibold = "semibold"
	WeightBold     = "bold"
)

var (
	parseOnce sync.Once
	parseErr  error
	parsed    map[string]*truetype.Font
)

// parseAll parses the embedded TTF data once on first use.
func parseAll() {
	sources := map[string][]byte{
		WeightNormal:   goregular.TTF,
		WeightSemibold: gomedium.TTF,
		WeightBold:     gobold.TTF,
	}
	parsed = make(map[string]*truetype.Font, len(sources))
	for weight, ttf := range sources {
		f, err := truetype.Parse(ttf)
		if err != nil {
			parseErr = err
			return
		}
		parsed[weight] = f
	}
}

// Face returns a font face for the given weight at the given size in points.
// Unknown weights fall back to normal. Faces are cheap to create; callers
// should not share one face across goroutines while drawing.
func Face(weight string, size float64) (font.Face, error) {
	parseOnce.Do(parseAll)
	if parseErr != nil {
		return nil, parseErr
	}

	f, ok := parsed[weight]
	if !ok {
		f = parsed[WeightNormal]
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
