package model

import (
	"time"
)

type MovingRequest struct {
	ID               string    `db:"id"`
	CustomerID       string    `db:"customer_id"` // subject of the bearer token that created it
	CustomerName     string    `db:"customer_name"`
	CustomerEmail    string    `db:"customer_email"`
	CustomerPhone    string    `db:"customer_phone"`
	FromCity         string    `db:"from_city"`
	ToCity           string    `db:"to_city"`
	MoveDate         string    `db:"move_date"` // YYYY-MM-DD, empty when flexible
	Details          string    `db:"details"`
	MediaUploadToken *string   `db:"media_upload_token"` // currently active upload token
	CreatedAt        time.Time `db:"created_at"`
}

func (r *MovingRequest) OwnedBy(userID string) bool {
	return userID != "" && r.CustomerID == userID
}
