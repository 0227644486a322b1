package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"mediacenter/internal/models"
)

// MemStore — реализация Store в памяти для тестов и локальной разработки
// без Postgres. Времена создания строго возрастают, чтобы сортировка
// «свежее выше» была детерминированной.
type MemStore struct {
	mu    sync.Mutex
	seq   int64
	clock time.Time

	Users     []models.User
	News      []models.News
	Photos    []models.Photo
	Documents []models.Document
}

var _ Store = (*MemStore)(nil)

func NewMem() *MemStore {
	return &MemStore{clock: time.Now().Truncate(time.Second)}
}

func (s *MemStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *MemStore) nextTime() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

// AddUser — для наполнения тестовых данных; возвращает id.
func (s *MemStore) AddUser(u models.User) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID()
	s.Users = append(s.Users, u)
	return u.ID
}

func (s *MemStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Users {
		if s.Users[i].Username == username {
			u := s.Users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Users {
		if s.Users[i].ID == id {
			u := s.Users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) TeamMembers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.Users {
		if u.Role != models.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemStore) CreateNews(_ context.Context, n *models.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID()
	n.CreatedAt = s.nextTime()
	s.News = append(s.News, *n)
	return nil
}

func (s *MemStore) ListNews(_ context.Context, limit int) ([]models.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.News, len(s.News))
	copy(out, s.News)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) NewsByID(_ context.Context, id int64) (*models.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.News {
		if s.News[i].ID == id {
			n := s.News[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateNewsWithPhoto(ctx context.Context, n *models.News, attach func(newsID int64) (*models.Photo, error)) error {
	// Вставка «в транзакции»: при ошибке attach новость не остаётся.
	if err := s.CreateNews(ctx, n); err != nil {
		return err
	}
	if attach == nil {
		return nil
	}
	p, err := attach(n.ID)
	if err != nil {
		s.mu.Lock()
		for i := range s.News {
			if s.News[i].ID == n.ID {
				s.News = append(s.News[:i], s.News[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		return err
	}
	if p != nil {
		return s.CreatePhoto(ctx, p)
	}
	return nil
}

func (s *MemStore) CreatePhoto(_ context.Context, p *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID()
	p.CreatedAt = s.nextTime()
	s.Photos = append(s.Photos, *p)
	return nil
}

func (s *MemStore) sortedPhotos() []models.Photo {
	out := make([]models.Photo, len(s.Photos))
	copy(out, s.Photos)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemStore) ListPhotos(_ context.Context) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedPhotos(), nil
}

func (s *MemStore) LatestPhotos(_ context.Context, n int) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return nil, nil
	}
	out := s.sortedPhotos()
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemStore) CreateDocument(_ context.Context, d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextID()
	d.CreatedAt = s.nextTime()
	s.Documents = append(s.Documents, *d)
	return nil
}

func (s *MemStore) ListDocuments(_ context.Context) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Document, len(s.Documents))
	copy(out, s.Documents)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
