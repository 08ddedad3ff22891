package image

import (
	"context"
	"path/filepath"

	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
)

const (
	// defaultExtension is assumed when the original filename carries none.
	defaultExtension = ".png"
	// thumbnailSuffix is the fixed key suffix of an uploaded thumbnail.
	thumbnailSuffix = "_thumb.webp"
)

func extensionOf(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		return ext
	}

	return defaultExtension
}

func (uc *ImageUseCase) proxyURL(key string) string {
	return uc.baseURL + "/img/" + key
}

func (uc *ImageUseCase) publish(ctx context.Context, action string, record *entity.ImageRecord) {
	if uc.events == nil {
		return
	}

	if err := uc.events.SendImageEvent(ctx, action, record); err != nil {
		uc.logger.Warn("failed to publish %s event for id=%s, error=%v", action, record.ID, err)
	}
}
