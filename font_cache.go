package jigsaw

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontCache loads TrueType/OpenType fonts and serves both render faces and
// measurement faces. It is the real FontMetrics implementation: measurement
// uses unhinted (ideal) glyph advances so the layout engine wraps at the
// same positions regardless of the raster hinting used later to draw.
//
// One FontCache may be shared across sessions; all methods are safe for
// concurrent use.
type FontCache struct {
	mu           sync.RWMutex
	dirs         []string
	fonts        map[string]*sfnt.Font
	faces        map[faceKey]font.Face // render faces (HintingFull)
	measureFaces map[faceKey]font.Face // measure faces (HintingNone)
	family       string
	scanned      bool

	buf sfnt.Buffer
}

type faceKey struct {
	name string
	size float64
}

// maxFontFileSize limits the size of individual font files read into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// maxFontScanDepth limits recursive traversal of font directories.
const maxFontScanDepth = 3

// NewFontCache creates a cache that searches the given directories plus the
// OS default font directories. family names the face used for fact text;
// empty means the first usable font found.
func NewFontCache(family string, extraDirs ...string) *FontCache {
	return &FontCache{
		dirs:         append(systemFontDirs(), extraDirs...),
		fonts:        make(map[string]*sfnt.Font),
		faces:        make(map[faceKey]font.Face),
		measureFaces: make(map[faceKey]font.Face),
		family:       strings.ToLower(family),
	}
}

// LoadFontData registers a font from raw bytes under the given name.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	fc.mu.Lock()
	fc.register(strings.ToLower(name), f)
	fc.mu.Unlock()
	return nil
}

// LoadFont registers a font file under the given name.
func (fc *FontCache) LoadFont(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// Measure implements FontMetrics using an unhinted face. With no usable
// font it degrades to the arithmetic approximation rather than failing.
func (fc *FontCache) Measure(text string, size float64) float64 {
	face := fc.measureFace(size)
	if face == nil {
		return ApproxMetrics{}.Measure(text, size)
	}
	return f26(font.MeasureString(face, text))
}

// Outline implements TextOutliner: SVG path data for text with its left
// baseline end at (x, y). Returns "" when no real font is loaded.
func (fc *FontCache) Outline(text string, x, y, size float64) string {
	f := fc.lookup()
	if f == nil {
		return ""
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	ppem := fixed.Int26_6(size * 64)
	var d strings.Builder
	pen := x

	for _, r := range text {
		gi, err := f.GlyphIndex(&fc.buf, r)
		if err != nil || gi == 0 {
			continue
		}
		segs, err := f.LoadGlyph(&fc.buf, gi, ppem, nil)
		if err != nil {
			continue
		}
		for _, seg := range segs {
			p := seg.Args
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				fmt.Fprintf(&d, "M%s,%s ", coordNum(pen+f26(p[0].X)), coordNum(y+f26(p[0].Y)))
			case sfnt.SegmentOpLineTo:
				fmt.Fprintf(&d, "L%s,%s ", coordNum(pen+f26(p[0].X)), coordNum(y+f26(p[0].Y)))
			case sfnt.SegmentOpQuadTo:
				fmt.Fprintf(&d, "Q%s,%s %s,%s ",
					coordNum(pen+f26(p[0].X)), coordNum(y+f26(p[0].Y)),
					coordNum(pen+f26(p[1].X)), coordNum(y+f26(p[1].Y)))
			case sfnt.SegmentOpCubeTo:
				fmt.Fprintf(&d, "C%s,%s %s,%s %s,%s ",
					coordNum(pen+f26(p[0].X)), coordNum(y+f26(p[0].Y)),
					coordNum(pen+f26(p[1].X)), coordNum(y+f26(p[1].Y)),
					coordNum(pen+f26(p[2].X)), coordNum(y+f26(p[2].Y)))
			}
		}
		adv, err := f.GlyphAdvance(&fc.buf, gi, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		pen += f26(adv)
	}

	return strings.TrimSpace(d.String())
}

func f26(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Face returns a hinted render face at the given size, or nil when no font
// is available. The renderer falls back to a built-in bitmap face.
func (fc *FontCache) Face(size float64) font.Face {
	return fc.faceWith(size, font.HintingFull, fc.faces)
}

func (fc *FontCache) measureFace(size float64) font.Face {
	return fc.faceWith(size, font.HintingNone, fc.measureFaces)
}

func (fc *FontCache) faceWith(size float64, hinting font.Hinting, cache map[faceKey]font.Face) font.Face {
	f := fc.lookup()
	if f == nil {
		return nil
	}
	key := faceKey{name: fc.family, size: size}

	fc.mu.RLock()
	if face, ok := cache[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: hinting,
	})
	if err != nil {
		return nil
	}

	fc.mu.Lock()
	cache[key] = face
	fc.mu.Unlock()
	return face
}

// lookup returns the configured family, or a common fallback, or any loaded
// font at all.
func (fc *FontCache) lookup() *sfnt.Font {
	fc.ensureScanned()

	fc.mu.RLock()
	defer fc.mu.RUnlock()

	if fc.family != "" {
		if f, ok := fc.fonts[fc.family]; ok {
			return f
		}
	}
	for _, fallback := range []string{"dejavu sans", "liberation sans", "noto sans", "arial", "helvetica"} {
		if f, ok := fc.fonts[fallback]; ok {
			return f
		}
	}
	for _, f := range fc.fonts {
		return f
	}
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDir(dir, 0)
	}
}

func (fc *FontCache) scanDir(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		f, err := sfnt.Parse(data)
		if err != nil {
			continue
		}
		fc.register(strings.TrimSuffix(lower, filepath.Ext(lower)), f)
	}
}

// register stores a font by key and by its internal family name. Callers
// hold fc.mu.
func (fc *FontCache) register(key string, f *sfnt.Font) {
	fc.fonts[key] = f
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		fc.fonts[strings.ToLower(family)] = f
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home, _ := os.UserHomeDir(); home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home, _ := os.UserHomeDir(); home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
