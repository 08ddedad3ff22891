package usecase

import (
	"context"

	"github.com/Jacky088/Edgeone-Imgbed/internal/dto"
	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
)

type (
	ImageUseCase interface {
		Upload(ctx context.Context, main dto.FileUpload, thumbnail *dto.FileUpload) (*entity.ImageRecord, error)
		Delete(ctx context.Context, id string) (dto.DeleteResult, error)
		List(ctx context.Context) ([]entity.ImageRecord, error)
		Proxy(ctx context.Context, path, rangeHeader string) (*entity.BlobObject, error)
	}
)
