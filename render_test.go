package jigsaw

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func renderableSession(t *testing.T) (*Session, *Geometry, []*Fact) {
	t.Helper()
	s := newTestSession(t, PuzzleSpec{Width: 600, Height: 450, Rows: 2, Cols: 3, Seed: 17})
	for i := 0; i < 6; i++ {
		if _, err := s.AssignFact(i, "A small fact"); err != nil {
			t.Fatal(err)
		}
	}
	g, err := s.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	back, err := s.BackFacts()
	if err != nil {
		t.Fatal(err)
	}
	return s, g, back
}

func TestRenderFrontDimensionsAndLines(t *testing.T) {
	_, g, _ := renderableSession(t)

	img := RenderFront(nil, g, nil)
	bounds := img.Bounds()
	if bounds.Dx() != 600 || bounds.Dy() != 450 {
		t.Fatalf("canvas = %dx%d, want 600x450", bounds.Dx(), bounds.Dy())
	}

	// The outer rectangle passes through (0, y) for every y.
	line := DefaultRenderOptions().LineColor
	if img.RGBAAt(0, 10) != line {
		t.Errorf("expected cut-line pixel on the left border, got %v", img.RGBAAt(0, 10))
	}
	// An interior pixel away from any edge stays background.
	bg := DefaultRenderOptions().Background
	if img.RGBAAt(100, 112) != bg && img.RGBAAt(95, 100) != bg {
		t.Error("expected some background pixels inside a cell")
	}
}

func TestRenderFrontScalesPhoto(t *testing.T) {
	_, g, _ := renderableSession(t)

	photo := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			photo.SetRGBA(x, y, red)
		}
	}

	img := RenderFront(photo, g, nil)
	c := img.RGBAAt(300, 110)
	if c.R < 200 || c.G > 60 || c.B > 60 {
		t.Errorf("expected photo pixel in the canvas center, got %v", c)
	}
}

func TestRenderBack(t *testing.T) {
	_, g, back := renderableSession(t)

	img, err := RenderBack(g, back, nil)
	if err != nil {
		t.Fatalf("RenderBack: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 600 || bounds.Dy() != 450 {
		t.Fatalf("canvas = %dx%d, want 600x450", bounds.Dx(), bounds.Dy())
	}

	// Fact text drawn with the built-in face leaves non-background pixels
	// near at least one cell center.
	text := DefaultRenderOptions().TextColor
	found := false
	for _, box := range g.SafeBoxes() {
		cx, cy := int(box.CenterX), int(box.CenterY)
		for y := cy - 10; y <= cy+10 && !found; y++ {
			for x := cx - 40; x <= cx+40 && !found; x++ {
				if img.RGBAAt(x, y) == text {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("no text pixels found near any cell center")
	}
}

func TestRenderBackFactCountMismatch(t *testing.T) {
	_, g, back := renderableSession(t)
	if _, err := RenderBack(g, back[:3], nil); err == nil {
		t.Error("expected error for wrong fact count")
	}
}

func TestSaveImageFormats(t *testing.T) {
	_, g, _ := renderableSession(t)
	img := RenderFront(nil, g, nil)
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "front.png")
	if err := SaveImage(img, pngPath, nil); err != nil {
		t.Fatalf("save png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not decodable png: %v", err)
	}

	jopts := DefaultRenderOptions()
	jopts.Format = ImageFormatJPEG
	if err := SaveImage(img, filepath.Join(dir, "front.jpg"), jopts); err != nil {
		t.Fatalf("save jpeg: %v", err)
	}
}

func TestWriteCutLinesSVG(t *testing.T) {
	_, g, _ := renderableSession(t)

	var buf bytes.Buffer
	if err := WriteCutLinesSVG(&buf, g); err != nil {
		t.Fatalf("WriteCutLinesSVG: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `viewBox="0 0 600 450"`) {
		t.Error("missing or wrong viewBox")
	}
	if got, want := strings.Count(out, "<path "), len(g.Paths); got != want {
		t.Errorf("svg has %d paths, want %d", got, want)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("svg not closed")
	}

	// Byte-identical across renders of the same spec.
	var buf2 bytes.Buffer
	if err := WriteCutLinesSVG(&buf2, mustBuild(t, g.Spec)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != buf2.String() {
		t.Error("svg output differs between builds of the same spec")
	}
}

func TestWriteBackSVG(t *testing.T) {
	_, g, back := renderableSession(t)

	var buf bytes.Buffer
	if err := WriteBackSVG(&buf, g, back, nil, nil); err != nil {
		t.Fatalf("WriteBackSVG without outliner: %v", err)
	}
	if !strings.Contains(buf.String(), "<path ") {
		t.Error("back svg missing cut-line paths")
	}

	if err := WriteBackSVG(&buf, g, back[:2], nil, nil); err == nil {
		t.Error("expected error for wrong fact count")
	}
}
