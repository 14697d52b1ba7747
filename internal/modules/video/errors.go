package video

import "errors"

var (
	ErrVideoNotFound        = errors.New("video not found")
	ErrNoFile               = errors.New("no video file uploaded")
	ErrUnsupportedMediaType = errors.New("only video files are allowed")
	ErrFileTooLarge         = errors.New("video file too large")
)
