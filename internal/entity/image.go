package entity

// ImageRecord describes one uploaded asset. The ID doubles as the stem of
// the blob keys derived for the main image and its optional thumbnail.
type ImageRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	URL                  string `json:"url"`
	URLOriginal          string `json:"urlOriginal,omitempty"`
	ThumbnailURL         string `json:"thumbnailUrl,omitempty"`
	ThumbnailOriginalURL string `json:"thumbnailOriginalUrl,omitempty"`

	Size int64  `json:"size"`
	Type string `json:"type"`

	CreatedAt int64 `json:"createdAt"` // epoch milliseconds
}

func (r ImageRecord) HasThumbnail() bool {
	return r.ThumbnailURL != ""
}
