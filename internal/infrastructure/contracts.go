package infrastructure

import (
	"context"

	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
)

const (
	ActionUploaded = "image.uploaded"
	ActionDeleted  = "image.deleted"
)

type (
	EventsSender interface {
		SendImageEvent(ctx context.Context, action string, record *entity.ImageRecord) error
		Close() error
	}
)
