// Command puzzlegen renders a two-sided jigsaw puzzle from a photo and a
// facts file: the front is the photo with cut-lines, the back carries the
// facts mirrored into the matching cells.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pieceworks/jigsaw"
)

func main() {
	photoPath := flag.String("photo", "", "source photo (png/jpeg/gif)")
	factsPath := flag.String("facts", "", "facts file, one per line")
	rows := flag.Int("rows", 3, "grid rows")
	cols := flag.Int("cols", 4, "grid columns")
	width := flag.Int("width", 1200, "canvas width in pixels")
	height := flag.Int("height", 900, "canvas height in pixels")
	seed := flag.Uint("seed", 42, "32-bit geometry seed")
	fontDir := flag.String("fontdir", "", "extra font directory")
	outDir := flag.String("out", "out", "output directory")
	flag.Parse()

	spec := jigsaw.PuzzleSpec{
		Width:  *width,
		Height: *height,
		Rows:   *rows,
		Cols:   *cols,
		Seed:   uint32(*seed),
	}

	fonts := jigsaw.NewFontCache("", fontDirs(*fontDir)...)
	session, err := jigsaw.NewSession(spec, fonts, nil)
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	for i, text := range readFacts(*factsPath, spec.Pieces()) {
		fact, err := session.AssignFact(i, text)
		if err != nil {
			log.Fatalf("assign fact %d: %v", i, err)
		}
		if fact.Rewritten {
			log.Printf("cell %d: shortened to %q", i, fact.Text)
		}
		if fact.FitFailed {
			log.Printf("cell %d: does not fit, will print truncated", i)
		}
	}

	g, err := session.Geometry()
	if err != nil {
		log.Fatalf("geometry: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	opts := jigsaw.DefaultRenderOptions()
	opts.FontCache = fonts

	front := jigsaw.RenderFront(loadPhoto(*photoPath), g, opts)
	if err := jigsaw.SaveImage(front, filepath.Join(*outDir, "front.png"), opts); err != nil {
		log.Fatalf("save front: %v", err)
	}

	backFacts, err := session.BackFacts()
	if err != nil {
		log.Fatalf("mirror facts: %v", err)
	}
	back, err := jigsaw.RenderBack(g, backFacts, opts)
	if err != nil {
		log.Fatalf("render back: %v", err)
	}
	if err := jigsaw.SaveImage(back, filepath.Join(*outDir, "back.png"), opts); err != nil {
		log.Fatalf("save back: %v", err)
	}

	svgFile, err := os.Create(filepath.Join(*outDir, "cutlines.svg"))
	if err != nil {
		log.Fatalf("create svg: %v", err)
	}
	defer svgFile.Close()
	if err := jigsaw.WriteCutLinesSVG(svgFile, g); err != nil {
		log.Fatalf("write svg: %v", err)
	}

	fmt.Printf("Rendered %d pieces to %s\n", spec.Pieces(), *outDir)
}

func fontDirs(dir string) []string {
	if dir == "" {
		return nil
	}
	return []string{dir}
}

func loadPhoto(path string) image.Image {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open photo: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		log.Fatalf("decode photo: %v", err)
	}
	return img
}

// readFacts returns up to max non-empty lines; missing facts become
// placeholders so the back grid is always fully populated.
func readFacts(path string, max int) []string {
	facts := make([]string, max)
	for i := range facts {
		facts[i] = fmt.Sprintf("Piece %d", i+1)
	}
	if path == "" {
		return facts
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open facts: %v", err)
	}
	defer f.Close()

	i := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && i < max {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		facts[i] = line
		i++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read facts: %v", err)
	}
	return facts
}
