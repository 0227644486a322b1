package telegram

import (
	"context"
	"path"

	"mediacenter/internal/models"
	"mediacenter/internal/storage"
	"mediacenter/internal/uploads"
)

const titleLimit = 120

// Title строит заголовок новости из текста поста: до 120 рун текст
// берётся целиком, дальше — первые 120 рун и многоточие.
func Title(text string) string {
	r := []rune(text)
	if len(r) <= titleLimit {
		return text
	}
	return string(r[:titleLimit]) + "..."
}

// Ingest превращает обновление в новость (+ фото, если есть).
// Вставка идёт одной транзакцией: сорвавшаяся докачка фото откатывает
// и новость. Повторная доставка того же обновления создаст дубль —
// ключа идемпотентности у вебхука нет.
func Ingest(ctx context.Context, st storage.Store, dir uploads.Dir, c *Client, upd *Update) error {
	msg := upd.Message
	if msg == nil {
		msg = upd.ChannelPost
	}
	if msg == nil {
		// не пост — молча пропускаем, вебхук не должен ругаться
		return nil
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	n := &models.News{
		Title:   Title(text),
		Content: text,
		Source:  models.SourceTelegram,
	}

	var attach func(newsID int64) (*models.Photo, error)
	if len(msg.Photo) > 0 {
		// последний вариант — максимальное разрешение
		fileID := msg.Photo[len(msg.Photo)-1].FileID
		attach = func(newsID int64) (*models.Photo, error) {
			remote, err := c.GetFile(ctx, fileID)
			if err != nil {
				return nil, err
			}
			body, err := c.Download(ctx, remote)
			if err != nil {
				return nil, err
			}
			defer body.Close()

			rel, err := dir.SaveUnique(uploads.SubdirPhotos, path.Base(remote), body)
			if err != nil {
				return nil, err
			}
			id := newsID
			return &models.Photo{Filename: rel, NewsID: &id}, nil
		}
	}

	return st.CreateNewsWithPhoto(ctx, n, attach)
}
