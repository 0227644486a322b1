package models

import "time"

// Источники новости.
const (
	SourceManual   = "manual"
	SourceTelegram = "telegram"
)

// News — новость. category — свободная строка, по списку проектов
// не проверяется. author_id пустой у новостей, пришедших из Telegram.
type News struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Category  string    `json:"category"`
	Source    string    `json:"source"`
	AuthorID  *int64    `json:"author_id,omitempty"`
}
