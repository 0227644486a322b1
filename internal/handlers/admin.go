package handlers

import (
	"net/http"
	"strings"

	"mediacenter/internal/middleware"
	"mediacenter/internal/models"
	"mediacenter/internal/uploads"
)

// AdminPage — панель: все новости, фото и документы + список направлений.
func (a *App) AdminPage(w http.ResponseWriter, r *http.Request) {
	news, err := a.Store.ListNews(r.Context(), 0)
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	photos, err := a.Store.ListPhotos(r.Context())
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	docs, err := a.Store.ListDocuments(r.Context())
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	a.render(w, r, "admin.html", map[string]any{
		"Title":      "Админка",
		"News":       news,
		"Photos":     photos,
		"Docs":       docs,
		"Categories": models.ProjectCategories(),
	})
}

// PostNews публикует новость от имени текущего пользователя.
func (a *App) PostNews(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		a.Sessions.AddFlash(w, r, "danger", "Ошибка формы")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := r.FormValue("content")
	category := r.FormValue("category")
	source := r.FormValue("source")
	if source == "" {
		source = models.SourceManual
	}
	if title == "" {
		a.Sessions.AddFlash(w, r, "danger", "Укажите заголовок")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	n := &models.News{
		Title:    title,
		Content:  content,
		Category: category,
		Source:   source,
	}
	if u := middleware.UserFrom(r.Context()); u != nil {
		n.AuthorID = &u.ID
	}

	if err := a.Store.CreateNews(r.Context(), n); err != nil {
		a.Sessions.AddFlash(w, r, "danger", "Ошибка БД при сохранении")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	a.Sessions.AddFlash(w, r, "success", "Новость опубликована")
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// UploadPhoto принимает картинку из поля photo.
// Проверка формата — только по расширению имени файла.
func (a *App) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	a.uploadFile(w, r, "photo", uploads.AllowedImage, uploads.SubdirPhotos, func(rel string, uploaderID *int64) error {
		return a.Store.CreatePhoto(r.Context(), &models.Photo{Filename: rel, UploaderID: uploaderID})
	}, "Фото загружено")
}

// UploadDoc принимает документ из поля doc (только PDF).
func (a *App) UploadDoc(w http.ResponseWriter, r *http.Request) {
	a.uploadFile(w, r, "doc", uploads.AllowedDocument, uploads.SubdirDocs, func(rel string, uploaderID *int64) error {
		return a.Store.CreateDocument(r.Context(), &models.Document{Filename: rel, UploaderID: uploaderID})
	}, "Документ загружен")
}

// Общий путь обеих загрузок: лимит тела, файл из формы, allow-list
// расширения, запись на диск, строка в БД, флэш + редирект в админку.
func (a *App) uploadFile(w http.ResponseWriter, r *http.Request, field string, allowed func(string) bool, subdir string, insert func(rel string, uploaderID *int64) error, okMsg string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxRequestBytes); err != nil {
		a.Sessions.AddFlash(w, r, "danger", "Слишком большой файл (лимит 50 МБ)")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	file, hdr, err := r.FormFile(field)
	if err != nil {
		a.Sessions.AddFlash(w, r, "danger", "Нет файла")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	defer file.Close()

	if !allowed(hdr.Filename) {
		a.Sessions.AddFlash(w, r, "danger", "Неподдерживаемый формат")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	rel, err := a.Uploads.Save(subdir, hdr.Filename, file)
	if err != nil {
		a.Sessions.AddFlash(w, r, "danger", "Не удалось сохранить файл")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	var uploaderID *int64
	if u := middleware.UserFrom(r.Context()); u != nil {
		uploaderID = &u.ID
	}
	if err := insert(rel, uploaderID); err != nil {
		a.Sessions.AddFlash(w, r, "danger", "Ошибка БД при сохранении")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	a.Sessions.AddFlash(w, r, "success", okMsg)
	http.Redirect(w, r, "/admin", http.StatusFound)
}
