package models

import "time"

// Photo — фотография. filename — относительный путь внутри uploads
// (например photos/abc.jpg). news_id проставлен у фото, пришедших
// вместе с телеграм-постом; uploader_id — у загруженных через админку.
type Photo struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
	UploaderID *int64    `json:"uploader_id,omitempty"`
	NewsID     *int64    `json:"news_id,omitempty"`
}
