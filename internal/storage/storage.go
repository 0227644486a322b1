// Package storage — доступ к данным сайта. Интерфейс Store закрывает
// Postgres-реализацию, в тестах вместо неё подставляется MemStore.
package storage

import (
	"context"
	"errors"

	"mediacenter/internal/models"
)

// ErrNotFound возвращается при отсутствии записи с таким id/именем.
var ErrNotFound = errors.New("storage: not found")

// Store — операции над новостями, фото, документами и пользователями.
type Store interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// TeamMembers — все пользователи, кроме администраторов (страница «Команда»).
	TeamMembers(ctx context.Context) ([]models.User, error)

	// CreateNews проставляет ID и CreatedAt в переданной записи.
	CreateNews(ctx context.Context, n *models.News) error
	// ListNews — по убыванию created_at; limit <= 0 означает «все».
	ListNews(ctx context.Context, limit int) ([]models.News, error)
	NewsByID(ctx context.Context, id int64) (*models.News, error)

	// CreateNewsWithPhoto вставляет новость и, если attach вернул фото,
	// фото одной транзакцией. Ошибка attach откатывает и новость —
	// осиротевших новостей без обещанного фото не остаётся.
	// attach == nil или вернувший nil-фото означает «новость без фото».
	CreateNewsWithPhoto(ctx context.Context, n *models.News, attach func(newsID int64) (*models.Photo, error)) error

	CreatePhoto(ctx context.Context, p *models.Photo) error
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	// LatestPhotos — не больше n свежих фото, по убыванию created_at.
	LatestPhotos(ctx context.Context, n int) ([]models.Photo, error)

	CreateDocument(ctx context.Context, d *models.Document) error
	ListDocuments(ctx context.Context) ([]models.Document, error)
}
