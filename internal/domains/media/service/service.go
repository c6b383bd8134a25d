package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
)

var (
	ErrEmptyUpload        = result.Invalid("file is required")
	ErrStorageUnavailable = result.New(result.KindInternal, "media storage is not configured")
)

type ServiceInterface interface {
	UploadCover(ctx context.Context, identity *session.Identity, data []byte) (string, error)
}

// ImageProcessor is satisfied by *storage.ImageProcessor.
type ImageProcessor interface {
	ValidateImage(data []byte) error
	ProcessCover(data []byte) ([]byte, error)
}

// ObjectStore is satisfied by *storage.MinIOStorage.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type mediaService struct {
	images ImageProcessor
	store  ObjectStore
}

// NewMediaService accepts a nil store; uploads then fail as internal errors.
func NewMediaService(images ImageProcessor, store ObjectStore) ServiceInterface {
	return &mediaService{images: images, store: store}
}

func (s *mediaService) UploadCover(ctx context.Context, identity *session.Identity, data []byte) (string, error) {
	id, err := session.RequireRole(identity, session.RoleAuthor, session.RoleAdmin)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if s.store == nil {
		return "", ErrStorageUnavailable
	}

	if err := s.images.ValidateImage(data); err != nil {
		return "", result.InvalidErr(err)
	}
	cover, err := s.images.ProcessCover(data)
	if err != nil {
		return "", result.InvalidErr(err)
	}

	key := CoverKey(id.UserID, uuid.New())
	url, err := s.store.Upload(ctx, key, cover, "image/jpeg")
	if err != nil {
		return "", result.Internal(fmt.Errorf("upload cover: %w", err))
	}

	log.Info().Str("user_id", id.UserID.String()).Str("key", key).Int("bytes", len(cover)).Msg("cover uploaded")
	return url, nil
}

func CoverKey(userID, objectID uuid.UUID) string {
	return fmt.Sprintf("blogs/%s/%s.jpg", userID, objectID)
}
