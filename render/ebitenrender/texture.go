package ebitenrender

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// decodeTexture reads and decodes the image at path. PNG, JPEG, GIF, BMP
// and WebP are supported.
func decodeTexture(fsys fs.FS, path string) (image.Image, string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open texture %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode texture %s: %w", path, err)
	}
	return img, format, nil
}
