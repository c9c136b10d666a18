package video

import "errors"

var (
	ErrMissingTitle         = errors.New("video title is required")
	ErrMissingFile          = errors.New("video file is required")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrNotFound             = errors.New("video not found")
)
