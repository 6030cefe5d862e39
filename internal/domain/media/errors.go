package media

import "errors"

var (
	ErrAssetNotFound     = errors.New("media asset not found")
	ErrEmptyFile         = errors.New("file is empty")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedType   = errors.New("file type is not allowed")
	ErrExtensionMismatch = errors.New("file extension does not match its type")
	ErrUnsafeFileName    = errors.New("file name is not safe to store")
	ErrNotAnImage        = errors.New("asset is not an image")
	ErrAgentRequired     = errors.New("document attachments require an owning agent")
	ErrInvalidCategory   = errors.New("unknown media category")
	ErrInvalidReorderSet = errors.New("reorder list does not match the owner's assets")
	ErrThumbnailDecode   = errors.New("could not decode image for thumbnail")
	ErrStorageIntegrity  = errors.New("media storage integrity violation")
)
