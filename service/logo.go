package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"

	"github.com/disintegration/imaging"
)

// Invoice header logo box, in CSS pixels.
const maxLogoDim = 146

// LoadLogoDataURI reads the seller logo, downscales it to the header box and
// returns it as a data URI for inlining into the invoice HTML. An empty path
// returns an empty URI and the header renders without a logo.
func LoadLogoDataURI(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode logo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxLogoDim || bounds.Dy() > maxLogoDim {
		log.Printf("🔄 Resizing logo: %dx%d -> fit %dpx", bounds.Dx(), bounds.Dy(), maxLogoDim)
		img = imaging.Fit(img, maxLogoDim, maxLogoDim, imaging.Lanczos)
	}

	// Re-encode as PNG to keep transparency regardless of source format.
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode logo: %w", err)
	}

	log.Printf("✓ Logo loaded: format=%s, %d bytes inlined", format, buf.Len())
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
