package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mediacenter/internal/models"
)

// PostgresStore реализует Store поверх database/sql + lib/pq.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

/* ---------- пользователи ---------- */

const userCols = `id, username, full_name, password_hash, role`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE username = $1`, username))
}

func (s *PostgresStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) TeamMembers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userCols+` FROM users WHERE role <> $1 ORDER BY id`, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

/* ---------- новости ---------- */

const newsCols = `id, title, content, created_at, category, source, author_id`

func (s *PostgresStore) CreateNews(ctx context.Context, n *models.News) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO news (title, content, category, source, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		n.Title, n.Content, n.Category, n.Source, n.AuthorID,
	).Scan(&n.ID, &n.CreatedAt)
}

func (s *PostgresStore) ListNews(ctx context.Context, limit int) ([]models.News, error) {
	q := `SELECT ` + newsCols + ` FROM news ORDER BY created_at DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, q+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.News
	for rows.Next() {
		var n models.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.Category, &n.Source, &n.AuthorID); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) NewsByID(ctx context.Context, id int64) (*models.News, error) {
	var n models.News
	err := s.db.QueryRowContext(ctx,
		`SELECT `+newsCols+` FROM news WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.Category, &n.Source, &n.AuthorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNewsWithPhoto — единственная многошаговая запись в системе,
// поэтому единственное место с явной транзакцией.
func (s *PostgresStore) CreateNewsWithPhoto(ctx context.Context, n *models.News, attach func(newsID int64) (*models.Photo, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO news (title, content, category, source, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		n.Title, n.Content, n.Category, n.Source, n.AuthorID,
	).Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("insert news: %w", err)
	}

	if attach != nil {
		p, err := attach(n.ID)
		if err != nil {
			return err
		}
		if p != nil {
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO photos (filename, uploader_id, news_id)
				VALUES ($1, $2, $3)
				RETURNING id, created_at`,
				p.Filename, p.UploaderID, p.NewsID,
			).Scan(&p.ID, &p.CreatedAt); err != nil {
				return fmt.Errorf("insert photo: %w", err)
			}
		}
	}

	return tx.Commit()
}

/* ---------- фото ---------- */

const photoCols = `id, filename, created_at, uploader_id, news_id`

func (s *PostgresStore) CreatePhoto(ctx context.Context, p *models.Photo) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO photos (filename, uploader_id, news_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		p.Filename, p.UploaderID, p.NewsID,
	).Scan(&p.ID, &p.CreatedAt)
}

func (s *PostgresStore) scanPhotos(rows *sql.Rows) ([]models.Photo, error) {
	defer rows.Close()
	var out []models.Photo
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.Filename, &p.CreatedAt, &p.UploaderID, &p.NewsID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+photoCols+` FROM photos ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return s.scanPhotos(rows)
}

func (s *PostgresStore) LatestPhotos(ctx context.Context, n int) ([]models.Photo, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+photoCols+` FROM photos ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	return s.scanPhotos(rows)
}

/* ---------- документы ---------- */

func (s *PostgresStore) CreateDocument(ctx context.Context, d *models.Document) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO documents (filename, uploader_id)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		d.Filename, d.UploaderID,
	).Scan(&d.ID, &d.CreatedAt)
}

func (s *PostgresStore) ListDocuments(ctx context.Context) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, created_at, uploader_id FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.CreatedAt, &d.UploaderID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
