// Package save provides frame snapshots on disk
package save

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer stores rendered frames as PNG files.
type Writer struct {
	dir string
}

// NewWriter creates a snapshot writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// SavePNG writes the packed pixel plane (row-major, top row first,
// R in the low byte of each uint32) to a timestamped PNG and returns
// the path.
func (w *Writer) SavePNG(width, height int, pixels []uint32) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	name := fmt.Sprintf("frame_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(w.dir, name)
	if err := WritePNG(path, width, height, pixels); err != nil {
		return "", err
	}
	return path, nil
}

// WritePNG writes the packed pixel plane to the given path.
func WritePNG(path string, width, height int, pixels []uint32) error {
	if len(pixels) < width*height {
		return fmt.Errorf("save: %d pixels for %dx%d frame", len(pixels), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(p),
				G: uint8(p >> 8),
				B: uint8(p >> 16),
				A: uint8(p >> 24),
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
