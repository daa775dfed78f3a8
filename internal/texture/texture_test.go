package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"avatar-combiner/internal/descriptor"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestBuildIndex(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "top", "outfit-f-casual-01-v1-top-d.png"), 4, 4)
	writePNG(t, filepath.Join(root, "top", "outfit-f-casual-01-v1-top-n.png"), 4, 4)
	writePNG(t, filepath.Join(root, "top", "outfit-f-casual-02-v1-top.png"), 4, 4) // map tag defaults to D
	writePNG(t, filepath.Join(root, ".hidden", "outfit-f-casual-03-v1-top-d.png"), 4, 4)

	idx := BuildIndex(root)
	if idx.Len() != 2 {
		t.Fatalf("indexed parts = %d, want 2", idx.Len())
	}

	part, err := descriptor.Parse("outfit-f-casual-01-v1-top")
	if err != nil {
		t.Fatal(err)
	}
	maps := idx.Maps(part)
	if len(maps) != 2 {
		t.Fatalf("maps = %v, want D and N", maps)
	}
	if _, ok := maps["D"]; !ok {
		t.Error("missing diffuse map")
	}
	if _, ok := maps["N"]; !ok {
		t.Error("missing normal map")
	}

	other, _ := descriptor.Parse("outfit-f-casual-02-v1-top")
	if maps := idx.Maps(other); len(maps) != 1 {
		t.Errorf("default-map part has %v", maps)
	}

	none, _ := descriptor.Parse("outfit-f-casual-99-v1-top")
	if maps := idx.Maps(none); maps != nil {
		t.Errorf("unknown part has maps %v", maps)
	}
}

func TestLoadMapAndShrink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outfit-f-casual-01-v1-top-d.png")
	writePNG(t, path, 64, 32)

	img, err := LoadMap(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	small := Shrink(img, 16)
	if small.Bounds().Dx() != 16 || small.Bounds().Dy() != 8 {
		t.Errorf("shrunk bounds = %v, want 16x8", small.Bounds())
	}

	// Within bounds: untouched.
	if got := Shrink(img, 64); got != img {
		t.Error("in-bounds image should pass through")
	}
	if got := Shrink(img, 0); got != img {
		t.Error("maxSize 0 disables shrinking")
	}
}

func TestCacheEncodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outfit-f-casual-01-v1-top-d.png")
	writePNG(t, path, 8, 8)

	cache := NewCache(2048)
	webp, err := cache.Encoded(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(webp) == 0 {
		t.Fatal("empty webp output")
	}

	again, err := cache.Encoded(path)
	if err != nil {
		t.Fatal(err)
	}
	if &webp[0] != &again[0] {
		t.Error("second lookup did not hit the cache")
	}

	if _, err := cache.Encoded(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file should error")
	}
}
