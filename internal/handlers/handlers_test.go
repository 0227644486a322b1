package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"mediacenter/internal/auth"
	mw "mediacenter/internal/middleware"
	"mediacenter/internal/models"
	"mediacenter/internal/sessions"
	"mediacenter/internal/storage"
	"mediacenter/internal/uploads"
)

// fixture — приложение на MemStore за httptest-сервером,
// клиент с cookie jar и без автоследования редиректам.
type fixture struct {
	app    *App
	store  *storage.MemStore
	srv    *httptest.Server
	client *http.Client
	root   string // корень файлового хранилища
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	app := &App{
		Store:        storage.NewMem(),
		Sessions:     sessions.New("test-secret", false),
		Uploads:      uploads.New(root),
		TemplatesDir: filepath.Join("..", "..", "web", "templates"),
	}

	srv := httptest.NewServer(newTestRouter(app))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &fixture{
		app:    app,
		store:  app.Store.(*storage.MemStore),
		srv:    srv,
		client: client,
		root:   root,
	}
}

// newTestRouter повторяет маршрутизацию из cmd/main.go.
func newTestRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.Uploads.Root))))

	r.Get("/", app.Index)
	r.Get("/news/{id}", app.NewsView)
	r.Get("/gallery", app.Gallery)
	r.Get("/projects", app.Projects)
	r.Get("/team", app.Team)

	r.Get("/login", app.ShowLogin)
	r.Post("/login", app.HandleLogin)
	r.With(mw.RequireUser(app.Sessions, app.Store)).Get("/logout", app.HandleLogout)

	gate := mw.RequireRole(app.Sessions, app.Store,
		models.RoleAdmin, models.RoleCurator, models.RolePress)
	r.Group(func(g chi.Router) {
		g.Use(gate)
		g.Get("/admin", app.AdminPage)
		g.Post("/admin/post_news", app.PostNews)
		g.Post("/admin/upload_photo", app.UploadPhoto)
		g.Post("/admin/upload_doc", app.UploadDoc)
	})

	r.Post("/tg-webhook", app.TelegramWebhook)
	return r
}

// seedUser заводит пользователя с паролем и возвращает его id.
func (f *fixture) seedUser(t *testing.T, username, password string, role models.Role) int64 {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return f.store.AddUser(models.User{Username: username, PasswordHash: hash, Role: role})
}

// login проходит форму входа; после вызова в jar лежит сессионная кука.
func (f *fixture) login(t *testing.T, username, password string) *http.Response {
	t.Helper()
	resp, err := f.client.PostForm(f.srv.URL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.srv.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

// multipartBody собирает multipart-форму с одним файлом.
func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
