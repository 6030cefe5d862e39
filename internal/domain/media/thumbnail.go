package media

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Register webp decoding; webp is in the default image allow-list but the
	// stdlib image package cannot decode it on its own.
	_ "golang.org/x/image/webp"

	"realtymedia/internal/config"
)

// ThumbnailMimeType is the normalized output format for all derived previews,
// regardless of the original image format.
const ThumbnailMimeType = "image/jpeg"

// Thumbnailer derives a single fixed-size JPEG preview from an original
// image. It is pure with respect to its inputs and does not persist anything.
type Thumbnailer struct {
	width     int
	height    int
	quality   int
	keepRatio bool
}

func NewThumbnailer(policy config.MediaPolicy) *Thumbnailer {
	return &Thumbnailer{
		width:     policy.ThumbWidth,
		height:    policy.ThumbHeight,
		quality:   policy.ThumbQuality,
		keepRatio: policy.ThumbKeepAspectRatio,
	}
}

// Derive decodes raw image bytes and returns the base64-encoded JPEG preview
// plus the original pixel dimensions. A decode failure returns a wrapped
// ErrThumbnailDecode; callers treat that as non-fatal and store the asset
// without a preview.
func (t *Thumbnailer) Derive(raw []byte) (encoded string, width, height int, err error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %v", ErrThumbnailDecode, err)
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()

	var thumb image.Image
	if t.keepRatio {
		thumb = imaging.Fit(img, t.width, t.height, imaging.Lanczos)
	} else {
		thumb = imaging.Resize(img, t.width, t.height, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(t.quality)); err != nil {
		return "", 0, 0, fmt.Errorf("encode thumbnail: %w", err)
	}

	return Encode(buf.Bytes()), width, height, nil
}
