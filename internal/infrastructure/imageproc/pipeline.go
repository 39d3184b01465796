package imageproc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	apperrors "photohive/pkg/errors"
)

const (
	DefaultThumbnailHeight = 100
	DefaultJPEGQuality     = 90
	DefaultMaxImagePixels  = 50_000_000

	// MaxJPEGDimension is the largest side the JPEG encoder accepts.
	MaxJPEGDimension = 65535
)

type Options struct {
	ThumbnailHeight int
	JPEGQuality     int
	// MaxImageBytes bounds the decoded payload size. Zero disables the check.
	MaxImageBytes int64
	// MaxImagePixels bounds width*height read from the image header, before
	// any pixel is decoded. Zero means DefaultMaxImagePixels.
	MaxImagePixels int64
}

// Pipeline turns an uploaded base64 payload into a JPEG image and its
// thumbnail. It keeps no state between calls and never touches the disk, so
// one Pipeline is shared by all requests.
type Pipeline struct {
	thumbHeight int
	quality     int
	maxBytes    int64
	maxPixels   int64
}

// Normalized is an opaque RGB image together with its JPEG encoding.
type Normalized struct {
	Image  *image.NRGBA
	JPEG   []byte
	Width  int
	Height int
}

type Result struct {
	Image     []byte
	Thumbnail []byte
	Width     int
	Height    int
}

func NewPipeline(opts Options) *Pipeline {
	if opts.ThumbnailHeight <= 0 {
		opts.ThumbnailHeight = DefaultThumbnailHeight
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	if opts.MaxImagePixels <= 0 {
		opts.MaxImagePixels = DefaultMaxImagePixels
	}
	return &Pipeline{
		thumbHeight: opts.ThumbnailHeight,
		quality:     opts.JPEGQuality,
		maxBytes:    opts.MaxImageBytes,
		maxPixels:   opts.MaxImagePixels,
	}
}

// Process runs DecodePayload, Normalize and Thumbnail in order.
func (p *Pipeline) Process(payload string) (*Result, error) {
	raw, err := p.DecodePayload(payload)
	if err != nil {
		return nil, err
	}

	normalized, err := p.Normalize(raw)
	if err != nil {
		return nil, err
	}

	thumb, err := p.Thumbnail(normalized)
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:     normalized.JPEG,
		Thumbnail: thumb,
		Width:     normalized.Width,
		Height:    normalized.Height,
	}, nil
}

// DecodePayload decodes standard base64. A data URL prefix, embedded
// whitespace and missing padding are accepted.
func (p *Pipeline) DecodePayload(payload string) ([]byte, error) {
	s := strings.TrimSpace(payload)
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
			return nil, apperrors.InvalidPayload(fmt.Errorf("malformed data url"))
		}
		s = s[comma+1:]
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, apperrors.InvalidPayload(fmt.Errorf("empty payload"))
	}

	if p.maxBytes > 0 && int64(base64.RawStdEncoding.DecodedLen(len(strings.TrimRight(s, "=")))) > p.maxBytes {
		return nil, apperrors.PayloadTooLarge(p.maxBytes)
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		var rawErr error
		raw, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if rawErr != nil {
			return nil, apperrors.InvalidPayload(err)
		}
	}
	if len(raw) == 0 {
		return nil, apperrors.InvalidPayload(fmt.Errorf("empty payload"))
	}
	return raw, nil
}

// Normalize decodes any registered image format, applies EXIF orientation,
// drops alpha and re-encodes the result as JPEG. Dimensions are checked from
// the header before the pixels are decoded.
func (p *Pipeline) Normalize(raw []byte) (*Normalized, error) {
	if err := p.CheckDimensions(raw); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.UnsupportedImageFormat(err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, apperrors.InvalidImageDimensions(bounds.Dx(), bounds.Dy())
	}

	rgb := flatten(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, rgb, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, apperrors.Internal("Failed to encode image", err)
	}

	return &Normalized{
		Image:  rgb,
		JPEG:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// CheckDimensions reads the image header and rejects images with an empty or
// oversized side, or more than the configured number of pixels.
func (p *Pipeline) CheckDimensions(raw []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return apperrors.UnsupportedImageFormat(err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 ||
		cfg.Width > MaxJPEGDimension || cfg.Height > MaxJPEGDimension ||
		int64(cfg.Width)*int64(cfg.Height) > p.maxPixels {
		return apperrors.InvalidImageDimensions(cfg.Width, cfg.Height)
	}
	return nil
}

// Thumbnail scales n to the configured height keeping the aspect ratio.
func (p *Pipeline) Thumbnail(n *Normalized) ([]byte, error) {
	width, err := ThumbnailWidth(n.Width, n.Height, p.thumbHeight)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Resize(n.Image, width, p.thumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, apperrors.Internal("Failed to encode thumbnail", err)
	}
	return buf.Bytes(), nil
}

// ThumbnailWidth returns round(targetHeight * width / height), at least 1.
// Widths the JPEG encoder cannot write are rejected.
func ThumbnailWidth(width, height, targetHeight int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, apperrors.InvalidImageDimensions(width, height)
	}
	w := math.Round(float64(targetHeight) * float64(width) / float64(height))
	if w > MaxJPEGDimension {
		return 0, apperrors.InvalidImageDimensions(width, height)
	}
	if w < 1 {
		w = 1
	}
	return int(w), nil
}

// flatten copies img into an NRGBA image with every pixel fully opaque.
// Colour channels are kept as stored, matching a plain RGB conversion.
func flatten(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
