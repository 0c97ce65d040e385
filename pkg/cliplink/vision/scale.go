package vision

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

const (
	maxUploadBytes = 4 << 20
	maxEdgePixels  = 1600
)

// maybeDownscale shrinks oversized frames before upload. The annotate
// API rejects payloads over its size limit and gains nothing from
// resolution beyond maxEdgePixels. Frames that cannot be decoded are
// passed through untouched.
func maybeDownscale(data []byte) []byte {
	if len(data) <= maxUploadBytes {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil || (cfg.Width <= maxEdgePixels && cfg.Height <= maxEdgePixels) {
			return data
		}
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxEdgePixels && len(data) <= maxUploadBytes {
		return data
	}

	scale := float64(maxEdgePixels) / float64(longest)
	if scale > 1 {
		scale = 1
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return data
	}
	return buf.Bytes()
}
