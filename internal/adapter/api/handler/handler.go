package handler

import (
	"photohive/internal/usecase"
)

var (
	photoHandler *PhotoHandler
	tagHandler   *TagHandler
)

func Setup(photoUseCase *usecase.PhotoUseCase) {
	photoHandler = NewPhotoHandler(photoUseCase)
	tagHandler = NewTagHandler(photoUseCase)
}

func GetPhotoHandler() *PhotoHandler {
	return photoHandler
}

func GetTagHandler() *TagHandler {
	return tagHandler
}
