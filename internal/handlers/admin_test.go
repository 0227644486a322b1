package handlers

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacenter/internal/models"
)

func (f *fixture) postMultipart(t *testing.T, path, field, filename string, content []byte) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, field, filename, content)
	resp, err := f.client.Post(f.srv.URL+path, contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestUploadPhotoRejectsBadExtension(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "press", "pw", models.RolePress)
	f.login(t, "press", "pw")

	resp := f.postMultipart(t, "/admin/upload_photo", "photo", "payload.exe", []byte("MZ..."))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	// строка в БД не появилась, флэш объясняет причину
	photos, err := f.store.ListPhotos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, photos)

	_, body := f.get(t, "/admin")
	assert.Contains(t, body, "Неподдерживаемый формат")
}

func TestUploadPhotoStoresFileAndRow(t *testing.T) {
	f := newFixture(t)
	uid := f.seedUser(t, "press", "pw", models.RolePress)
	f.login(t, "press", "pw")

	resp := f.postMultipart(t, "/admin/upload_photo", "photo", "Праздник 2026.jpg", []byte("jpeg-bytes"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	photos, err := f.store.ListPhotos(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "photos/prazdnik_2026.jpg", photos[0].Filename)
	require.NotNil(t, photos[0].UploaderID)
	assert.Equal(t, uid, *photos[0].UploaderID)
	assert.Nil(t, photos[0].NewsID)

	got, err := os.ReadFile(filepath.Join(f.root, "photos", "prazdnik_2026.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(got))

	// и файл виден через /uploads/
	respFile, body := f.get(t, "/uploads/"+photos[0].Filename)
	assert.Equal(t, http.StatusOK, respFile.StatusCode)
	assert.Equal(t, "jpeg-bytes", body)
}

func TestUploadPhotoWithoutFile(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "press", "pw", models.RolePress)
	f.login(t, "press", "pw")

	// форма без поля photo
	resp := f.postMultipart(t, "/admin/upload_photo", "other", "pic.jpg", []byte("x"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	_, body := f.get(t, "/admin")
	assert.Contains(t, body, "Нет файла")
}

func TestUploadDocPDFOnly(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "press", "pw", models.RolePress)
	f.login(t, "press", "pw")

	resp := f.postMultipart(t, "/admin/upload_doc", "doc", "отчёт.docx", []byte("not-pdf"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	docs, err := f.store.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)

	resp = f.postMultipart(t, "/admin/upload_doc", "doc", "отчёт.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	docs, err = f.store.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "docs/otchet.pdf", docs[0].Filename)
}

func TestPostNews(t *testing.T) {
	f := newFixture(t)
	uid := f.seedUser(t, "curator", "pw", models.RoleCurator)
	f.login(t, "curator", "pw")

	resp, err := f.client.PostForm(f.srv.URL+"/admin/post_news", url.Values{
		"title":    {"Открытие сезона"},
		"content":  {"Подробности позже."},
		"category": {"Будь здоров!"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	news, err := f.store.ListNews(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Открытие сезона", news[0].Title)
	assert.Equal(t, models.SourceManual, news[0].Source)
	assert.Equal(t, "Будь здоров!", news[0].Category)
	require.NotNil(t, news[0].AuthorID)
	assert.Equal(t, uid, *news[0].AuthorID)
	assert.False(t, news[0].CreatedAt.IsZero())
}

func TestPostNewsAcceptsUnknownCategory(t *testing.T) {
	// категория — свободная строка, по списку направлений не проверяется
	f := newFixture(t)
	f.seedUser(t, "curator", "pw", models.RoleCurator)
	f.login(t, "curator", "pw")

	resp, err := f.client.PostForm(f.srv.URL+"/admin/post_news", url.Values{
		"title":    {"Без направления"},
		"content":  {"..."},
		"category": {"несуществующее направление"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	news, err := f.store.ListNews(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "несуществующее направление", news[0].Category)
}

func TestAdminRequiresLogin(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/admin"} {
		resp, _ := f.get(t, path)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	}

	resp := f.postMultipart(t, "/admin/upload_photo", "photo", "pic.jpg", []byte("x"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	photos, err := f.store.ListPhotos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, photos)
}
