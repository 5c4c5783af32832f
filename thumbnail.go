// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

const (
	thumbnailMaxWidth  = 160
	thumbnailMaxHeight = 120

	thumbnailStartQuality = 90
	thumbnailMinQuality   = 10
	thumbnailQualityStep  = 10
)

// GenerateThumbnail creates a thumbnail of img that fits the space
// reserved for the embedded thumbnail. See FitThumbnail.
func (b *Block) GenerateThumbnail(img image.Image) []byte {
	return FitThumbnail(img, b.ThumbnailSize)
}

// FitThumbnail scales img down to fit within 160x120 pixels and encodes it as
// JPEG, lowering the quality until the result fits in budget bytes.
// The result is zero padded to exactly budget bytes.
// It returns nil if it does not fit at the lowest quality.
func FitThumbnail(img image.Image, budget int) []byte {
	if budget <= 0 || img == nil || img.Bounds().Empty() {
		return nil
	}

	thumb := scaleDown(img, thumbnailMaxWidth, thumbnailMaxHeight)

	var buf bytes.Buffer
	for quality := thumbnailStartQuality; quality >= thumbnailMinQuality; quality -= thumbnailQualityStep {
		buf.Reset()
		if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: quality}); err != nil {
			return nil
		}
		if buf.Len() <= budget {
			p := make([]byte, budget)
			copy(p, buf.Bytes())
			return p
		}
	}

	return nil
}

// scaleDown scales img to fit within maxWidth x maxHeight keeping the aspect ratio.
// Smaller images are kept as is.
func scaleDown(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	if w*maxHeight > h*maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	} else {
		w = max(1, w*maxHeight/h)
		h = maxHeight
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
