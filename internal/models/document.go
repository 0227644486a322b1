package models

import "time"

// Document — загруженный документ (PDF), filename — относительный
// путь внутри uploads (docs/...).
type Document struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
	UploaderID *int64    `json:"uploader_id,omitempty"`
}
