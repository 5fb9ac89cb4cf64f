package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportspot/booking-backend/internal/pkg/storage"
)

// Uploads larger than this are rejected before touching storage.
const maxUploadBytes = 10 << 20 // 10 MiB

type Service interface {
	// Upload stores an uploaded image, resized for its kind, plus a thumbnail.
	Upload(ctx context.Context, header *multipart.FileHeader, ownerID string, kind Kind) (*File, error)
	Get(ctx context.Context, id string) (*File, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func maxSizeFor(kind Kind) int {
	if kind == KindAvatar {
		return storage.AvatarMaxSize
	}
	return storage.CourtPhotoMaxSize
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, ownerID string, kind Kind) (*File, error) {
	if header.Size > maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	// Re-encode for the target kind. A decode failure here means the body
	// is not really an image regardless of the declared content type.
	max := maxSizeFor(kind)
	fitted, err := s.imgProc.FitJPEG(bytes.NewReader(raw), max, max)
	if err != nil {
		return nil, ErrNotAnImage
	}

	fileBytes, err := io.ReadAll(fitted)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer resized image: %w", err)
	}

	fileID := uuid.New().String()

	// Sharding path: upload/ab/UUID.jpg
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s.jpg", shard, fileID)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes))
	if err == nil {
		tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	} else {
		zap.L().Warn("thumbnail generation failed", zap.String("file_id", fileID), zap.Error(err))
	}

	f := &File{
		ID:            fileID,
		OwnerID:       ownerID,
		Kind:          kind,
		Filename:      filepath.Base(header.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   "image/jpeg",
		Size:          int64(len(fileBytes)),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		// Cleanup storage if db fails
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return f, nil
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort storage cleanup; the DB row is the source of truth.
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		zap.L().Warn("failed to delete stored file", zap.String("file_id", id), zap.Error(err))
	}
	if f.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *f.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}

	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if f.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, f, nil
}
