// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package operators implements the pixel-level redaction operators applied
// to planned regions: pixelation, blur and solid fill.
package operators

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

// Style selects a redaction operator.
type Style string

const (
	StylePixelate Style = "pixelate"
	StyleBlur     Style = "blur"
	StyleFill     Style = "fill"
)

// Options tunes the operators.
type Options struct {
	// PixelSize is the mosaic block edge, in pixels.
	PixelSize int
	// BlurSigma controls blur strength; the region is downscaled by this
	// factor and scaled back up through a bilinear kernel.
	BlurSigma float64
	// FillColor paints StyleFill regions.
	FillColor color.Color
}

// DefaultOptions match the configuration defaults.
func DefaultOptions() Options {
	return Options{PixelSize: 12, BlurSigma: 4.0, FillColor: color.Black}
}

// Apply redacts one region of the image in place. Regions outside the
// image bounds are clipped; a fully clipped region is a no-op.
func Apply(img draw.Image, region detector.PixelRegion, style Style, opts Options) error {
	rect := image.Rect(region.Left, region.Top, region.Right, region.Bottom).
		Intersect(img.Bounds())
	if rect.Empty() {
		return nil
	}

	switch style {
	case StylePixelate:
		pixelate(img, rect, opts.PixelSize)
	case StyleBlur:
		blur(img, rect, opts.BlurSigma)
	case StyleFill:
		fill(img, rect, opts.FillColor)
	default:
		return fmt.Errorf("unknown redaction style %q", style)
	}
	return nil
}

// pixelate replaces the rect with a mosaic: downscale so each block
// becomes one pixel, then scale back with nearest-neighbor.
func pixelate(img draw.Image, rect image.Rectangle, blockSize int) {
	if blockSize < 1 {
		blockSize = 1
	}
	w := (rect.Dx() + blockSize - 1) / blockSize
	h := (rect.Dy() + blockSize - 1) / blockSize

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, rect, xdraw.Src, nil)
	xdraw.NearestNeighbor.Scale(img, rect, small, small.Bounds(), xdraw.Src, nil)
}

// blur softens the rect by scaling down and back up through bilinear
// kernels; the round trip discards high-frequency detail.
func blur(img draw.Image, rect image.Rectangle, sigma float64) {
	if sigma < 1 {
		sigma = 1
	}
	w := maxInt(1, int(float64(rect.Dx())/sigma))
	h := maxInt(1, int(float64(rect.Dy())/sigma))

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, rect, xdraw.Src, nil)
	xdraw.ApproxBiLinear.Scale(img, rect, small, small.Bounds(), xdraw.Src, nil)
}

func fill(img draw.Image, rect image.Rectangle, c color.Color) {
	if c == nil {
		c = color.Black
	}
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// ParseHexColor parses "#RRGGBB" into a color.
func ParseHexColor(s string) (color.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
