package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"photohive/internal/domain/entity"
	"photohive/internal/usecase"
	"photohive/pkg/errors"
	"photohive/pkg/logger"
	"photohive/pkg/response"
)

type PhotoHandler struct {
	photoUseCase *usecase.PhotoUseCase
}

func NewPhotoHandler(photoUseCase *usecase.PhotoUseCase) *PhotoHandler {
	return &PhotoHandler{
		photoUseCase: photoUseCase,
	}
}

type photoMetadataRequest struct {
	Username string   `json:"username" validate:"required"`
	Tags     []string `json:"tags"`
}

type createPhotoRequest struct {
	Metadata photoMetadataRequest `json:"metadata"`
	Image    string               `json:"image" validate:"required"`
}

// PhotoSummary is the list projection; it omits the full image URL.
type PhotoSummary struct {
	ID          string    `json:"id"`
	LastUpdated time.Time `json:"lastUpdated"`
	Username    string    `json:"username"`
	Tags        []string  `json:"tags"`
	ThumbURL    string    `json:"thumbUrl"`
}

// PhotoDetail is the single-photo projection; it omits the thumbnail URL.
type PhotoDetail struct {
	ID          string    `json:"id"`
	LastUpdated time.Time `json:"lastUpdated"`
	Username    string    `json:"username"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"imageUrl"`
}

func toSummary(p *entity.Photo) PhotoSummary {
	return PhotoSummary{
		ID:          p.ID,
		LastUpdated: p.LastUpdated,
		Username:    p.Username,
		Tags:        nonNilTags(p.Tags),
		ThumbURL:    p.ThumbURL,
	}
}

func toDetail(p *entity.Photo) PhotoDetail {
	return PhotoDetail{
		ID:          p.ID,
		LastUpdated: p.LastUpdated,
		Username:    p.Username,
		Tags:        nonNilTags(p.Tags),
		ImageURL:    p.ImageURL,
	}
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func (h *PhotoHandler) ListPhotos(c echo.Context) error {
	photos, err := h.photoUseCase.ListPhotos(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return response.Error(c, err)
	}

	summaries := make([]PhotoSummary, 0, len(photos))
	for _, p := range photos {
		summaries = append(summaries, toSummary(p))
	}
	return response.Success(c, summaries)
}

func (h *PhotoHandler) GetPhoto(c echo.Context) error {
	photo, err := h.photoUseCase.GetPhoto(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, []PhotoDetail{toDetail(photo)})
}

func (h *PhotoHandler) CreatePhoto(c echo.Context) error {
	var req createPhotoRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request. Malformed JSON body.", err))
	}

	if err := c.Validate(&req); err != nil {
		logger.Debug("Rejected photo upload: %v", err)
		return response.Error(c, err)
	}

	id, err := h.photoUseCase.CreatePhoto(c.Request().Context(), usecase.CreatePhotoInput{
		Username: req.Metadata.Username,
		Tags:     req.Metadata.Tags,
		Image:    req.Image,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Body(c, id)
}

func (h *PhotoHandler) DeletePhoto(c echo.Context) error {
	id := c.Param("id")
	if err := h.photoUseCase.DeletePhoto(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, id)
}
