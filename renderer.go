package jigsaw

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/jbeda/geom"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster renderer: overlays cut-lines onto the photo for the front, and
// lays the mirrored facts into their safe zones for the back. Both sides
// are drawn from geometry derived from the same PuzzleSpec, which is the
// only thing keeping them aligned — the renderer itself holds no state
// between the two passes.

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures puzzle-side rendering.
type RenderOptions struct {
	// LineColor is the cut-line stroke color. Default: near-black.
	LineColor color.RGBA
	// LineWidth is the cut-line stroke width in pixels. Default: 2.
	LineWidth int
	// Background fills the back side and any front canvas not covered by
	// the photo. Default: white.
	Background color.RGBA
	// TextColor is the fact text color on the back. Default: black.
	TextColor color.RGBA
	// Format is the output image format for Save helpers.
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// FontCache supplies render faces for fact text. Nil falls back to a
	// built-in bitmap face.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		LineColor:   color.RGBA{R: 20, G: 20, B: 20, A: 255},
		LineWidth:   2,
		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		TextColor:   color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

func (o *RenderOptions) repaired() *RenderOptions {
	if o == nil {
		return DefaultRenderOptions()
	}
	out := *o
	if out.LineWidth <= 0 {
		out.LineWidth = 2
	}
	if out.LineColor.A == 0 {
		out.LineColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	}
	if out.Background.A == 0 {
		out.Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if out.TextColor.A == 0 {
		out.TextColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	}
	return &out
}

// RenderFront draws the photo scaled to the canvas with the cut-lines
// stroked on top. photo may be nil, leaving a plain background.
func RenderFront(photo image.Image, g *Geometry, opts *RenderOptions) *image.RGBA {
	opts = opts.repaired()
	img := newCanvas(g.Spec, opts.Background)

	if photo != nil {
		xdraw.ApproxBiLinear.Scale(img, img.Bounds(), photo, photo.Bounds(), xdraw.Src, nil)
	}

	r := &rasterizer{img: img}
	r.strokeGeometry(g, opts)
	return img
}

// RenderBack draws the cut-lines and the facts on a plain background. facts
// must already be in back-logical (mirrored) order and have length
// rows*cols; nil entries leave their cell empty.
func RenderBack(g *Geometry, facts []*Fact, opts *RenderOptions) (*image.RGBA, error) {
	if len(facts) != g.Spec.Pieces() {
		return nil, fmt.Errorf("render back: %d facts for a %dx%d grid",
			len(facts), g.Spec.Rows, g.Spec.Cols)
	}
	opts = opts.repaired()
	img := newCanvas(g.Spec, opts.Background)

	r := &rasterizer{img: img}
	r.strokeGeometry(g, opts)

	for i, fact := range facts {
		if fact == nil {
			continue
		}
		row, col := g.Spec.CellAt(i)
		r.drawFact(fact, g.SafeBox(row, col), opts)
	}
	return img, nil
}

// SaveImage writes an image using the options' format.
func SaveImage(img image.Image, path string, opts *RenderOptions) error {
	opts = opts.repaired()

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(f, img)
	}
}

func newCanvas(spec PuzzleSpec, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	return img
}

// --- rasterizer ---

type rasterizer struct {
	img *image.RGBA
}

func (r *rasterizer) strokeGeometry(g *Geometry, opts *RenderOptions) {
	for _, p := range g.Paths {
		r.strokePolyline(p.Points, opts.LineColor, opts.LineWidth)
	}
}

func (r *rasterizer) strokePolyline(pts []geom.Coord, c color.RGBA, width int) {
	for i := 0; i+1 < len(pts); i++ {
		r.drawLine(
			int(math.Round(pts[i].X)), int(math.Round(pts[i].Y)),
			int(math.Round(pts[i+1].X)), int(math.Round(pts[i+1].Y)),
			c, width)
	}
}

// drawLine is Bresenham with a square stamp for widths above one.
func (r *rasterizer) drawLine(x1, y1, x2, y2 int, c color.RGBA, width int) {
	dx := absInt(x2 - x1)
	dy := absInt(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		r.stamp(x1, y1, c, width)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *rasterizer) stamp(x, y int, c color.RGBA, width int) {
	half := width / 2
	for oy := -half; oy <= width-1-half; oy++ {
		for ox := -half; ox <= width-1-half; ox++ {
			r.setPixel(x+ox, y+oy, c)
		}
	}
}

func (r *rasterizer) setPixel(x, y int, c color.RGBA) {
	bounds := r.img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		r.img.SetRGBA(x, y, c)
	}
}

// drawFact draws a fact's resolved lines centered in its safe box.
func (r *rasterizer) drawFact(fact *Fact, box CellSafeBox, opts *RenderOptions) {
	var face font.Face
	if opts.FontCache != nil {
		face = opts.FontCache.Face(fact.Fit.FontSize)
	}
	if face == nil {
		face = basicfont.Face7x13
	}

	lineH := fact.Fit.LineHeight
	totalH := lineH * float64(len(fact.Fit.Lines))
	// Baseline of the first line: block centered vertically, ascent taken
	// as 80% of the line height.
	baseY := box.CenterY - totalH/2 + lineH*0.8

	for _, line := range fact.Fit.Lines {
		if line != "" {
			w := f26(font.MeasureString(face, line))
			d := &font.Drawer{
				Dst:  r.img,
				Src:  &image.Uniform{opts.TextColor},
				Face: face,
				Dot:  fixed.P(int(math.Round(box.CenterX-w/2)), int(math.Round(baseY))),
			}
			d.DrawString(line)
		}
		baseY += lineH
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
