package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ofertemutare/ofertemutare/internal/model"
)

var (
	ErrRequestNotFound = errors.New("moving request not found")
)

type MovingRequestRepository interface {
	Create(ctx context.Context, req *model.MovingRequest) error
	ByID(ctx context.Context, id string) (*model.MovingRequest, error)
	ByCustomer(ctx context.Context, customerID string) ([]*model.MovingRequest, error)
}

type movingRequestRepository struct {
	db *sqlx.DB
}

func NewMovingRequestRepository(db *sqlx.DB) MovingRequestRepository {
	return &movingRequestRepository{db: db}
}

func (r *movingRequestRepository) Create(ctx context.Context, req *model.MovingRequest) error {
	query := `
		INSERT INTO moving_requests (id, customer_id, customer_name, customer_email, customer_phone, from_city, to_city, move_date, details, media_upload_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.CustomerID,
		req.CustomerName,
		req.CustomerEmail,
		req.CustomerPhone,
		req.FromCity,
		req.ToCity,
		req.MoveDate,
		req.Details,
		req.MediaUploadToken,
		req.CreatedAt.UTC(),
	)
	return err
}

func (r *movingRequestRepository) ByID(ctx context.Context, id string) (*model.MovingRequest, error) {
	req := &model.MovingRequest{}
	err := r.db.GetContext(ctx, req, `SELECT * FROM moving_requests WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *movingRequestRepository) ByCustomer(ctx context.Context, customerID string) ([]*model.MovingRequest, error) {
	var reqs []*model.MovingRequest
	query := `SELECT * FROM moving_requests WHERE customer_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &reqs, query, customerID)
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
