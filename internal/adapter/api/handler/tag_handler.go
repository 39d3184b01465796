package handler

import (
	"github.com/labstack/echo/v4"

	"photohive/internal/usecase"
	"photohive/pkg/response"
)

type TagHandler struct {
	photoUseCase *usecase.PhotoUseCase
}

func NewTagHandler(photoUseCase *usecase.PhotoUseCase) *TagHandler {
	return &TagHandler{
		photoUseCase: photoUseCase,
	}
}

func (h *TagHandler) SearchTags(c echo.Context) error {
	tags, err := h.photoUseCase.SearchTags(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tags)
}
