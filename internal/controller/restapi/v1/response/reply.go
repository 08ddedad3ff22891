package response

// Reply is the envelope every JSON endpoint answers with. Code 0 is success;
// nonzero codes pair with a non-2xx HTTP status.
type Reply struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type Token struct {
	Token string `json:"token"`
}

type Upload struct {
	ID                   string `json:"id"`
	URL                  string `json:"url"`
	URLOriginal          string `json:"urlOriginal"`
	ThumbnailURL         string `json:"thumbnailUrl,omitempty"`
	ThumbnailOriginalURL string `json:"thumbnailOriginalUrl,omitempty"`
}
