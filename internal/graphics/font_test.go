package graphics

import (
	"image"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func testFace(t *testing.T) font.Face {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	t.Cleanup(func() { _ = face.Close() })
	return face
}

func TestPackGlyphs(t *testing.T) {
	img, chars := packGlyphs(testFace(t), 128)

	if got, want := len(chars), int(lastGlyph-firstGlyph+1); got != want {
		t.Fatalf("got %d glyphs, want %d", got, want)
	}
	h := img.Bounds().Dy()
	if h&(h-1) != 0 {
		t.Fatalf("atlas height %d is not a power of two", h)
	}
	if chars[' '].Advance <= 0 {
		t.Fatalf("space has no advance")
	}

	var rects []image.Rectangle
	for r, fc := range chars {
		if fc.Width == 0 {
			continue
		}
		rect := image.Rect(int(fc.AtlasX), int(fc.AtlasY), int(fc.AtlasX+fc.Width), int(fc.AtlasY+fc.Height))
		if !rect.In(img.Bounds()) {
			t.Fatalf("glyph %q at %v outside atlas %v", r, rect, img.Bounds())
		}
		for _, other := range rects {
			if rect.Overlaps(other) {
				t.Fatalf("glyph %q at %v overlaps %v", r, rect, other)
			}
		}
		rects = append(rects, rect)
	}
}

func TestMeasure(t *testing.T) {
	_, chars := packGlyphs(testFace(t), 256)
	fr := &FontRenderer{atlas: &FontAtlasInfo{Characters: chars}}

	w1, _ := fr.Measure("ab", 1)
	w2, _ := fr.Measure("ab", 2)
	if w1 <= 0 || w2 != 2*w1 {
		t.Fatalf("Measure scale: got %f and %f", w1, w2)
	}
	// missing glyphs advance by a space
	wMissing, _ := fr.Measure("é", 1)
	if wMissing != float32(chars[' '].Advance) {
		t.Fatalf("missing glyph: got %f, want %d", wMissing, chars[' '].Advance)
	}
}
