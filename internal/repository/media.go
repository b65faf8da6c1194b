package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/ofertemutare/ofertemutare/internal/model"
)

type MediaRepository interface {
	// CreateTx inserts within the caller's transaction (token consumption).
	CreateTx(ctx context.Context, tx *sqlx.Tx, media *model.Media) error
	ByRequest(ctx context.Context, requestID string) ([]*model.Media, error)
}

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, media *model.Media) error {
	query := `INSERT INTO request_media (id, request_id, upload_token, filename, original_name, mime_type, size, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.ExecContext(ctx, query,
		media.ID,
		media.RequestID,
		media.UploadToken,
		media.Filename,
		media.OriginalName,
		media.MimeType,
		media.Size,
		media.StoragePath,
		media.CreatedAt.UTC(),
	)
	return err
}

func (r *mediaRepository) ByRequest(ctx context.Context, requestID string) ([]*model.Media, error) {
	var media []*model.Media
	query := `SELECT * FROM request_media WHERE request_id = $1 ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &media, query, requestID)
	if err != nil {
		return nil, err
	}
	return media, nil
}
