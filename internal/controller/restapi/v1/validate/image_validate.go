package validate

const (
	MaxFileSize int64 = 10 * 1024 * 1024

	MaxThumbnailSize int64 = 2 * 1024 * 1024
)
