package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/g-s-k/psort/internal/heuristic"
	"github.com/g-s-k/psort/internal/sorter"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
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

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x*37 + y*11) % 256),
				G: uint8((x * 5) % 256),
				B: uint8((y * 23) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), testImage(4, 4))
	writePNG(t, filepath.Join(dir, "nested", "b.png"), testImage(4, 4))
	writePNG(t, filepath.Join(dir, ".hidden", "c.png"), testImage(4, 4))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("found %d sources, want 2: %+v", len(sources), sources)
	}

	seen := map[string]bool{}
	for _, s := range sources {
		seen[s.RelPath] = true
		if s.Format != "png" {
			t.Errorf("%s: format %q", s.RelPath, s.Format)
		}
		if s.Size == 0 {
			t.Errorf("%s: zero size", s.RelPath)
		}
	}
	if !seen["a.png"] || !seen["nested/b.png"] {
		t.Errorf("unexpected rel paths: %v", seen)
	}
}

func TestScanImagesNormalizesFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x.jpg", "y.tif"} {
		// Content doesn't matter for scanning.
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	formats := map[string]bool{}
	for _, s := range sources {
		formats[s.Format] = true
	}
	if !formats["jpeg"] || !formats["tiff"] {
		t.Errorf("formats not normalized: %v", formats)
	}
}

func TestRunSortsTree(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writePNG(t, filepath.Join(in, "a.png"), testImage(16, 8))
	writePNG(t, filepath.Join(in, "sub", "b.png"), testImage(8, 8))

	h := heuristic.Red
	opts := sorter.Options{Min: 0, Max: 255}

	p := New(Config{
		InputDir:  in,
		OutputDir: out,
		Heuristic: h,
		Options:   opts,
		Workers:   2,
	})
	summary, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Sorted) != 2 || summary.Failed != 0 {
		t.Fatalf("summary: %+v", summary)
	}
	if summary.OutputBytes == 0 {
		t.Error("output bytes not tallied")
	}

	// The written result must equal sorting the source directly.
	outFile := filepath.Join(out, "a_1.png")
	f, err := os.Open(outFile)
	if err != nil {
		t.Fatalf("expected output missing: %v", err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	want := testImage(16, 8)
	sorter.Image(want, h, opts, 1, nil)

	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gr, gg, gb, ga := got.At(x, y).RGBA()
			wpx := want.NRGBAAt(x, y)
			if uint8(gr>>8) != wpx.R || uint8(gg>>8) != wpx.G || uint8(gb>>8) != wpx.B || uint8(ga>>8) != wpx.A {
				t.Fatalf("pixel (%d,%d) differs from direct sort", x, y)
			}
		}
	}

	if _, err := os.Stat(filepath.Join(out, "sub", "b_1.png")); err != nil {
		t.Errorf("nested output missing: %v", err)
	}
}

func TestRunHashNames(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), testImage(8, 8))

	p := New(Config{
		InputDir:  in,
		OutputDir: out,
		Heuristic: heuristic.Luma,
		Options:   sorter.Options{Min: 0, Max: 255},
		Workers:   1,
		HashNames: true,
	})
	summary, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Sorted) != 1 {
		t.Fatalf("summary: %+v", summary)
	}

	name := regexp.MustCompile(`^a\.[0-9a-f]{16}\.png$`)
	if !name.MatchString(summary.Sorted[0].RelPath) {
		t.Errorf("rel path %q not content-addressed", summary.Sorted[0].RelPath)
	}
	if _, err := os.Stat(filepath.Join(out, summary.Sorted[0].RelPath)); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestRunPartialFailure(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "good.png"), testImage(8, 8))
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(Config{
		InputDir:  in,
		OutputDir: out,
		Heuristic: heuristic.Luma,
		Options:   sorter.Options{Min: 0, Max: 255},
		Workers:   1,
	})
	summary, err := p.Run()
	if err != nil {
		t.Fatalf("partial failure should not abort: %v", err)
	}
	if len(summary.Sorted) != 1 || summary.Failed != 1 {
		t.Fatalf("summary: %+v", summary)
	}
}

func TestRunAllFailed(t *testing.T) {
	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(Config{
		InputDir:  in,
		OutputDir: t.TempDir(),
		Heuristic: heuristic.Luma,
		Options:   sorter.Options{Min: 0, Max: 255},
		Workers:   1,
	})
	if _, err := p.Run(); err == nil {
		t.Fatal("expected error when every image fails")
	}
}

func TestRunEmptyDir(t *testing.T) {
	p := New(Config{
		InputDir:  t.TempDir(),
		OutputDir: t.TempDir(),
		Heuristic: heuristic.Luma,
		Options:   sorter.Options{Min: 0, Max: 255},
	})
	if _, err := p.Run(); err == nil {
		t.Fatal("expected error for empty input dir")
	}
}

func TestSortImageVertical(t *testing.T) {
	// A vertical sort over the full range orders every column; with the
	// clockwise pre-rotation the largest values end up at the top.
	img := image.NewNRGBA(image.Rect(0, 0, 3, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8((y*53 + x) % 256), A: 255})
		}
	}

	got := SortImage(img, heuristic.Red, sorter.Options{Min: 0, Max: 255}, true, 1, nil)

	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 5 {
		t.Fatalf("dimensions changed: %v", got.Bounds())
	}
	for x := 0; x < 3; x++ {
		for y := 1; y < 5; y++ {
			if got.NRGBAAt(x, y).R > got.NRGBAAt(x, y-1).R {
				t.Fatalf("column %d not ordered at y=%d: %d then %d",
					x, y, got.NRGBAAt(x, y-1).R, got.NRGBAAt(x, y).R)
			}
		}
	}
}

func TestSortImageHorizontalUnrotated(t *testing.T) {
	img := testImage(10, 4)
	got := SortImage(img, heuristic.Red, sorter.Options{Min: 0, Max: 255}, false, 1, nil)

	if got != img {
		t.Error("horizontal sort should mutate in place, not reallocate")
	}
	for y := 0; y < 4; y++ {
		for x := 1; x < 10; x++ {
			if got.NRGBAAt(x, y).R < got.NRGBAAt(x-1, y).R {
				t.Fatalf("row %d not ascending at x=%d", y, x)
			}
		}
	}
}
