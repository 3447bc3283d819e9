package filestorage

import "errors"

var (
	// ErrInvalidDataURL is returned for values that are not base64 data URLs
	ErrInvalidDataURL = errors.New("invalid data url")
	// ErrUnsupportedType is returned when the decoded content is not an allowed image
	ErrUnsupportedType = errors.New("unsupported file type")
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveDataURL decodes a base64 data URL into a file under subPath and
	// returns the URL it is served from
	SaveDataURL(dataURL, subPath string) (string, error)

	// DeleteFile removes a file previously returned by SaveDataURL
	DeleteFile(fileURL string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
