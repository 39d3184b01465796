package usecase

import "photohive/internal/infrastructure/imageproc"

// ImageProcessor turns an uploaded base64 payload into the full-size JPEG and
// its thumbnail.
type ImageProcessor interface {
	Process(payload string) (*imageproc.Result, error)
}
