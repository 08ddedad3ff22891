package image

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jacky088/Edgeone-Imgbed/internal/dto"
	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
	"github.com/Jacky088/Edgeone-Imgbed/internal/infrastructure"
	"github.com/Jacky088/Edgeone-Imgbed/internal/repo"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/logger"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/types/errs"
	"github.com/google/uuid"
)

type ImageUseCase struct {
	blob    repo.BlobRepo
	records repo.RecordRepo
	events  infrastructure.EventsSender
	baseURL string

	logger logger.Interface
}

func New(
	blob repo.BlobRepo,
	records repo.RecordRepo,
	events infrastructure.EventsSender,
	baseURL string,
	l logger.Interface,
) *ImageUseCase {
	return &ImageUseCase{
		blob:    blob,
		records: records,
		events:  events,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  l,
	}
}

// Upload writes the main blob (and the optional thumbnail) before any metadata
// exists, so no record ever points at a blob that failed to upload. A record
// persist failure after the blobs were written leaves them orphaned; nothing
// collects orphans.
func (uc *ImageUseCase) Upload(ctx context.Context, main dto.FileUpload, thumbnail *dto.FileUpload) (*entity.ImageRecord, error) {
	id := uuid.New().String()
	mainKey := id + extensionOf(main.Name)

	err := uc.blob.Upload(ctx, mainKey, main.Data, main.ContentType)
	if err != nil {
		return nil, fmt.Errorf("ImageUseCase - Upload - uc.blob.Upload: %w", err)
	}

	record := &entity.ImageRecord{
		ID:          id,
		Name:        main.Name,
		URL:         uc.proxyURL(mainKey),
		URLOriginal: uc.blob.ReadBase() + mainKey,
		Size:        main.Size,
		Type:        main.ContentType,
		CreatedAt:   time.Now().UnixMilli(),
	}

	if thumbnail != nil {
		thumbKey := id + thumbnailSuffix

		err = uc.blob.Upload(ctx, thumbKey, thumbnail.Data, thumbnail.ContentType)
		if err != nil {
			return nil, fmt.Errorf("ImageUseCase - Upload - uc.blob.Upload thumbnail: %w", err)
		}

		record.ThumbnailURL = uc.proxyURL(thumbKey)
		record.ThumbnailOriginalURL = uc.blob.ReadBase() + thumbKey
	}

	err = uc.records.Append(ctx, *record)
	if err != nil {
		return nil, fmt.Errorf("ImageUseCase - Upload - uc.records.Append: %w", err)
	}

	uc.publish(ctx, infrastructure.ActionUploaded, record)

	return record, nil
}

// Delete removes the record even when blob cleanup partially fails, so
// metadata never accumulates behind dead blobs. A failed main-blob delete is
// reported as a warning, never as an operation failure.
func (uc *ImageUseCase) Delete(ctx context.Context, id string) (dto.DeleteResult, error) {
	list, err := uc.records.Load(ctx)
	if err != nil {
		return dto.DeleteResult{}, fmt.Errorf("ImageUseCase - Delete - uc.records.Load: %w", err)
	}

	var target *entity.ImageRecord
	for i := range list {
		if list[i].ID == id {
			target = &list[i]
			break
		}
	}

	if target == nil {
		// already deleted; remove is an idempotent no-op
		err = uc.records.Remove(ctx, id)
		if err != nil {
			return dto.DeleteResult{}, fmt.Errorf("ImageUseCase - Delete - uc.records.Remove: %w", err)
		}

		return dto.DeleteResult{}, nil
	}

	result := dto.DeleteResult{Removed: true}

	mainKey := target.ID + extensionOf(target.Name)
	err = uc.blob.Delete(ctx, mainKey)
	if err != nil {
		uc.logger.Warn("failed to delete key=%s, error=%v", mainKey, err)

		result.Warning = "blob cleanup failed for " + mainKey
	}

	if target.HasThumbnail() {
		thumbKey := target.ID + thumbnailSuffix

		err = uc.blob.Delete(ctx, thumbKey)
		if err != nil {
			uc.logger.Warn("failed to delete key=%s, error=%v", thumbKey, err)
		}
	}

	err = uc.records.Remove(ctx, id)
	if err != nil {
		return result, fmt.Errorf("ImageUseCase - Delete - uc.records.Remove: %w", err)
	}

	uc.publish(ctx, infrastructure.ActionDeleted, target)

	return result, nil
}

func (uc *ImageUseCase) List(ctx context.Context) ([]entity.ImageRecord, error) {
	list, err := uc.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("ImageUseCase - List - uc.records.Load: %w", err)
	}

	return list, nil
}

// Proxy validates the relative path before any network call and streams the
// blob from the read base.
func (uc *ImageUseCase) Proxy(ctx context.Context, path, rangeHeader string) (*entity.BlobObject, error) {
	if path == "" || strings.Contains(path, "..") {
		return nil, errs.ErrInvalidPath
	}

	obj, err := uc.blob.Fetch(ctx, path, rangeHeader)
	if err != nil {
		return nil, fmt.Errorf("ImageUseCase - Proxy - uc.blob.Fetch: %w", err)
	}

	return obj, nil
}
