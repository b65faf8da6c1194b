package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ofertemutare/ofertemutare/internal/model"
)

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token has expired")
	ErrTokenUsed     = errors.New("token has already been used")
)

// ClaimFunc runs inside the consuming transaction after the token was
// claimed. Returning an error rolls the claim back.
type ClaimFunc func(ctx context.Context, tx *sqlx.Tx, token *model.UploadToken) error

type UploadTokenRepository interface {
	CreateForRequest(ctx context.Context, token *model.UploadToken) error
	ByToken(ctx context.Context, token string) (*model.UploadToken, error)
	Consume(ctx context.Context, token string, now time.Time, onClaim ClaimFunc) (*model.UploadToken, error)
}

type uploadTokenRepository struct {
	db *sqlx.DB
}

func NewUploadTokenRepository(db *sqlx.DB) UploadTokenRepository {
	return &uploadTokenRepository{db: db}
}

// CreateForRequest stores the token and points the owning request's
// media_upload_token at it, in one transaction. Earlier tokens of the
// request are left untouched.
func (r *uploadTokenRepository) CreateForRequest(ctx context.Context, token *model.UploadToken) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE moving_requests SET media_upload_token = $1 WHERE id = $2`,
		token.Token, token.RequestID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRequestNotFound
	}

	query := `
		INSERT INTO upload_tokens (token, request_id, customer_email, customer_name, upload_link, created_at, expires_at, used, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.ExecContext(ctx, query,
		token.Token,
		token.RequestID,
		token.CustomerEmail,
		token.CustomerName,
		token.UploadLink,
		token.CreatedAt.UTC(),
		token.ExpiresAt.UTC(),
		token.Used,
		token.UploadedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *uploadTokenRepository) ByToken(ctx context.Context, token string) (*model.UploadToken, error) {
	t := &model.UploadToken{}
	err := r.db.GetContext(ctx, t, `SELECT * FROM upload_tokens WHERE token = $1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Consume flips used to true only if it is still false, so of two
// concurrent consumers exactly one wins and the other gets ErrTokenUsed.
// Expiry is checked after the claim and rolls it back.
func (r *uploadTokenRepository) Consume(ctx context.Context, token string, now time.Time, onClaim ClaimFunc) (*model.UploadToken, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE upload_tokens SET used = TRUE, uploaded_at = $1 WHERE token = $2 AND used = FALSE`,
		now.UTC(), token,
	)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		var used bool
		err = tx.GetContext(ctx, &used, `SELECT used FROM upload_tokens WHERE token = $1`, token)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrTokenUsed
	}

	t := &model.UploadToken{}
	err = tx.GetContext(ctx, t, `SELECT * FROM upload_tokens WHERE token = $1`, token)
	if err != nil {
		return nil, err
	}
	if t.IsExpired(now) {
		return nil, ErrTokenExpired
	}

	if onClaim != nil {
		err = onClaim(ctx, tx, t)
		if err != nil {
			return nil, fmt.Errorf("claim callback: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}
	return t, nil
}
