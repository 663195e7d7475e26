package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/g-s-k/psort/internal/hasher"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// fileResult holds the outcome for a single source image.
type fileResult struct {
	out Output
	err error
}

// processFile decodes one source, sorts it, and writes the result under
// cfg.OutputDir, mirroring the source's relative location.
func processFile(src Source, cfg Config) fileResult {
	f, err := os.Open(src.AbsPath)
	if err != nil {
		return fileResult{err: fmt.Errorf("open %s: %w", src.RelPath, err)}
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return fileResult{err: fmt.Errorf("decode %s: %w", src.RelPath, err)}
	}

	img := imaging.Clone(decoded)
	img = SortImage(img, cfg.Heuristic, cfg.Options, cfg.Vertical, 1, nil)

	ext := strings.ToLower(filepath.Ext(src.RelPath))
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		// Decodable but not encodable (webp): fall back to png.
		ext = ".png"
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return fileResult{err: fmt.Errorf("encode %s: %w", src.RelPath, err)}
	}

	relDir := filepath.Dir(src.RelPath)
	stem := strings.TrimSuffix(filepath.Base(src.RelPath), filepath.Ext(src.RelPath))

	var name string
	if cfg.HashNames {
		name = fmt.Sprintf("%s.%s%s", stem, hasher.ContentHash(buf.Bytes(), 16), ext)
	} else {
		name = stem + "_1" + ext
	}
	relPath := filepath.ToSlash(filepath.Join(relDir, name))

	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fileResult{err: fmt.Errorf("create output dir for %s: %w", src.RelPath, err)}
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fileResult{err: fmt.Errorf("write %s: %w", relPath, err)}
	}

	return fileResult{out: Output{
		Source:  src,
		RelPath: relPath,
		Size:    int64(buf.Len()),
	}}
}
