// Package capture writes rendered frames to PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Format is a screenshot file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat parses a config format name. Empty selects PNG.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatBMP:
		return FormatBMP, nil
	}
	return "", fmt.Errorf("capture: unknown format %q", name)
}

func (f Format) encode(w io.Writer, img image.Image) error {
	if f == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// Capture saves screenshots into a directory.
type Capture struct {
	dir    string
	prefix string
	format Format
	now    func() time.Time
	last   string
	seq    int
}

// New creates a capture writing <dir>/<prefix>_<timestamp>.png files.
func New(dir, prefix string) *Capture {
	return &Capture{
		dir:    dir,
		prefix: prefix,
		format: FormatPNG,
		now:    time.Now,
	}
}

// SetFormat selects the file format of later captures.
func (c *Capture) SetFormat(f Format) {
	c.format = f
}

// Save writes RGBA pixels read from OpenGL, bottom row first, and returns
// the file path. Rows are flipped so the image is upright.
func (c *Capture) Save(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("capture: invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("capture: pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("capture: creating output dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	filename := c.nextFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("capture: creating file: %w", err)
	}
	defer file.Close()

	if err := c.format.encode(file, img); err != nil {
		return "", fmt.Errorf("capture: encoding %s: %w", c.format, err)
	}
	return filename, nil
}

// nextFilename appends a sequence number when several captures land in
// the same second.
func (c *Capture) nextFilename() string {
	stamp := c.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s", c.prefix, stamp)
	if name == c.last {
		c.seq++
	} else {
		c.last = name
		c.seq = 0
	}
	if c.seq > 0 {
		name = fmt.Sprintf("%s_%d", name, c.seq)
	}
	return filepath.Join(c.dir, name+"."+string(c.format))
}
