package imaging

import (
	"bytes"
	"fmt"
	"io"

	img "github.com/disintegration/imaging"

	"github.com/harithahub/storefront-backend/pkg/config"
)

// Compressor re-encodes uploaded product images as bounded JPEGs.
type Compressor struct {
	maxWidth  int
	maxHeight int
	quality   int
}

// NewCompressor builds a compressor from media configuration, clamping the
// quality to the JPEG range.
func NewCompressor(cfg config.MediaConfig) *Compressor {
	quality := cfg.ImageQuality
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	width := cfg.ImageMaxWidth
	if width <= 0 {
		width = 1920
	}
	height := cfg.ImageMaxHeight
	if height <= 0 {
		height = 1080
	}
	return &Compressor{maxWidth: width, maxHeight: height, quality: quality}
}

// Compress decodes the source image, scales it down to fit the configured
// bounds and returns JPEG bytes. Images already inside the bounds are only
// re-encoded.
func (c *Compressor) Compress(r io.Reader) ([]byte, error) {
	src, err := img.Decode(r, img.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > c.maxWidth || bounds.Dy() > c.maxHeight {
		src = img.Fit(src, c.maxWidth, c.maxHeight, img.Lanczos)
	}

	var buf bytes.Buffer
	if err := img.Encode(&buf, src, img.JPEG, img.JPEGQuality(c.quality)); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressedName derives the stored name for the compressed rendition.
func CompressedName(originalName string) string {
	return "compressed-" + trimExt(originalName) + ".jpg"
}

func trimExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		switch name[i] {
		case '.':
			return name[:i]
		case '/', '\\':
			return name
		}
	}
	return name
}
