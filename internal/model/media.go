package model

import (
	"time"
)

// Media is one photo or video of the customer's inventory.
type Media struct {
	ID           string    `db:"id"`
	RequestID    string    `db:"request_id"`
	UploadToken  string    `db:"upload_token"`
	Filename     string    `db:"filename"`
	OriginalName string    `db:"original_name"`
	MimeType     string    `db:"mime_type"`
	Size         int64     `db:"size"`
	StoragePath  string    `db:"storage_path"`
	CreatedAt    time.Time `db:"created_at"`

	// Computed fields (not in database)
	URL string `db:"-"`
}
