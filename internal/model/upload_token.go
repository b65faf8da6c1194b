package model

import (
	"time"
)

// UploadToken grants an unauthenticated customer a single upload
// against one moving request. The token string is the primary key.
type UploadToken struct {
	Token         string     `db:"token"`
	RequestID     string     `db:"request_id"`
	CustomerEmail string     `db:"customer_email"`
	CustomerName  string     `db:"customer_name"`
	UploadLink    string     `db:"upload_link"`
	CreatedAt     time.Time  `db:"created_at"`
	ExpiresAt     time.Time  `db:"expires_at"`
	Used          bool       `db:"used"`
	UploadedAt    *time.Time `db:"uploaded_at"`
}

// IsExpired reports whether now is past the expiry instant.
// A token is still usable at exactly ExpiresAt.
func (t *UploadToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *UploadToken) IsUsed() bool {
	return t.Used
}

func (t *UploadToken) IsValid(now time.Time) bool {
	return !t.IsUsed() && !t.IsExpired(now)
}
