package dto

type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

type DeleteResult struct {
	// Removed reports whether the record was present in the snapshot.
	Removed bool
	// Warning carries a non-fatal blob cleanup problem.
	Warning string
}

type ImageEvent struct {
	Action string `json:"action"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Type   string `json:"type"`
	At     int64  `json:"at"`
}
