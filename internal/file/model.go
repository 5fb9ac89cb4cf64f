package file

import (
	"net/http"
	"time"

	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "file not found")
	ErrNotAnImage   = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrNoThumbnail  = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrFileTooLarge = apperror.New(http.StatusRequestEntityTooLarge, "uploaded file is too large")
)

// Kind classifies what an uploaded image is used for. Avatars and court
// photos get different bounding boxes on resize.
type Kind string

const (
	KindAvatar     Kind = "avatar"
	KindCourtPhoto Kind = "court_photo"
)

// File represents an uploaded file's metadata.
type File struct {
	ID            string
	OwnerID       string // uploading user
	Kind          Kind
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for accessing a file by its ID.
func URL(id string) string {
	return "/api/files/" + id
}

// ThumbnailURL returns the public URL for a file's thumbnail.
func ThumbnailURL(id string) string {
	return "/api/files/" + id + "/thumbnail"
}
