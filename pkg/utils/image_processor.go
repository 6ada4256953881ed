package utils

import (
	"bytes"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"mime/multipart"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"tiestyle-backend/pkg/logger"
)

const (
	maxImageWidth = 2000
	encodeQuality = 85
)

// ProcessImage normalizes an uploaded catalog image: anything wider than
// maxImageWidth is scaled down, then the result is re-encoded as WebP. If the
// WebP encoder rejects the image, JPEG is used instead.
func ProcessImage(file multipart.File, filename string) ([]byte, string, error) {
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", err
	}
	logger.Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  encodeQuality,
	})
	if err != nil {
		logger.Warn().Err(err).Str("file", filename).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: encodeQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}
