package adb

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Screenshotter captures the device screen through screencap.
type Screenshotter struct {
	a *ADB
}

// NewScreenshotter returns an adb-backed screenshotter.
func NewScreenshotter(a *ADB) *Screenshotter { return &Screenshotter{a: a} }

// Capture grabs a screenshot and re-encodes it in the requested format,
// downscaled by scale. Downscaling keeps agent payloads small; screenshots
// at full device resolution are rarely worth their size.
func (s *Screenshotter) Capture(format string, quality int, scale float64) ([]byte, error) {
	if scale <= 0 || scale > 1 {
		return nil, fmt.Errorf("scale must be in (0, 1], got %g", scale)
	}
	raw, err := s.a.runRaw("exec-out", "screencap", "-p")
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode screencap: %w", err)
	}

	if scale < 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0,
			int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	switch format {
	case "", "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "jpg", "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported screenshot format: %q (use png or jpg)", format)
	}
	return buf.Bytes(), nil
}
