// Package imageio wraps image decoding and encoding for the sorter. It
// accepts anything the registered decoders understand and always hands
// the core an NRGBA buffer.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// encodableExtensions are the output extensions imaging.Save accepts.
var encodableExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Decode reads and decodes the image at path into an NRGBA buffer,
// returning the source format name alongside.
func Decode(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return imaging.Clone(img), format, nil
}

// Encode writes img to path, choosing the format from the extension.
func Encode(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// DerivedPath returns the default output path for an input file:
// "<stem>_1.<ext>" next to the input. Extensions we can decode but not
// encode (webp) fall back to png.
func DerivedPath(input string) string {
	dir := filepath.Dir(input)
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)

	if !encodableExtensions[strings.ToLower(ext)] {
		ext = ".png"
	}
	return filepath.Join(dir, stem+"_1"+ext)
}
