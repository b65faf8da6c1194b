package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ofertemutare/ofertemutare/internal/metrics"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/repository"
	"github.com/ofertemutare/ofertemutare/internal/storage"
	"github.com/ofertemutare/ofertemutare/internal/validation"
)

type MediaService struct {
	tokenService *UploadTokenService
	mediaRepo    repository.MediaRepository
	storage      storage.Storage
	now          func() time.Time
}

func NewMediaService(tokenService *UploadTokenService, mediaRepo repository.MediaRepository, storage storage.Storage) *MediaService {
	return &MediaService{
		tokenService: tokenService,
		mediaRepo:    mediaRepo,
		storage:      storage,
		now:          time.Now,
	}
}

// Upload stores the customer's inventory media and spends the token.
// Files go to storage first; the token is then consumed together with
// the media rows. If the token was spent meanwhile, stored objects are
// removed and ErrTokenUsed is returned.
func (s *MediaService) Upload(ctx context.Context, token string, files []*multipart.FileHeader) ([]*model.Media, error) {
	v, err := s.tokenService.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !v.Valid() {
		metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, v.Status.Err()
	}

	mimeTypes, err := validation.ValidateMedia(files)
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, invalid("files", err)
	}

	media := make([]*model.Media, 0, len(files))
	var total int64
	for i, header := range files {
		m, err := s.store(ctx, v.RequestID, token, header, mimeTypes[i])
		if err != nil {
			s.cleanup(media)
			metrics.MediaUploadsTotal.WithLabelValues("failure").Inc()
			return nil, storeErr("save media", err)
		}
		media = append(media, m)
		total += m.Size
	}

	_, err = s.tokenService.Consume(ctx, token, func(ctx context.Context, tx *sqlx.Tx, t *model.UploadToken) error {
		for _, m := range media {
			if err := s.mediaRepo.CreateTx(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.cleanup(media)
		if errors.Is(err, ErrStoreUnavailable) {
			metrics.MediaUploadsTotal.WithLabelValues("failure").Inc()
		} else {
			metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	metrics.MediaUploadsTotal.WithLabelValues("success").Inc()
	metrics.MediaUploadBytes.Observe(float64(total))
	slog.Info("media uploaded", "request_id", v.RequestID, "files", len(media), "bytes", total)
	return media, nil
}

func (s *MediaService) store(ctx context.Context, requestID, token string, header *multipart.FileHeader, mimeType string) (*model.Media, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer func() { _ = file.Close() }()

	id := uuid.New().String()
	filename := id + strings.ToLower(filepath.Ext(header.Filename))
	storagePath := fmt.Sprintf("requests/%s/%s", requestID, filename)

	err = s.storage.Save(ctx, storagePath, file, header.Size, mimeType)
	if err != nil {
		return nil, err
	}

	return &model.Media{
		ID:           id,
		RequestID:    requestID,
		UploadToken:  token,
		Filename:     filename,
		OriginalName: filepath.Base(header.Filename),
		MimeType:     mimeType,
		Size:         header.Size,
		StoragePath:  storagePath,
		CreatedAt:    s.now().UTC(),
	}, nil
}

// cleanup removes stored objects of an upload that did not complete.
func (s *MediaService) cleanup(media []*model.Media) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, m := range media {
		err := s.storage.Delete(ctx, m.StoragePath)
		if err != nil {
			slog.Error("failed to delete media from storage during cleanup", "error", err, "path", m.StoragePath)
		}
	}
}

// List returns a request's media with presigned download URLs.
func (s *MediaService) List(ctx context.Context, requestID string) ([]*model.Media, error) {
	media, err := s.mediaRepo.ByRequest(ctx, requestID)
	if err != nil {
		return nil, storeErr("list media", err)
	}

	for _, m := range media {
		url, err := s.storage.PresignedURL(ctx, m.StoragePath)
		if err != nil {
			slog.Warn("failed to presign media url", "error", err, "path", m.StoragePath)
			continue
		}
		m.URL = url
	}
	return media, nil
}
