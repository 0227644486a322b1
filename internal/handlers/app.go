package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"mediacenter/internal/models"
	"mediacenter/internal/sessions"
	"mediacenter/internal/storage"
	"mediacenter/internal/telegram"
	"mediacenter/internal/uploads"
)

// Потолок на тело запроса (формы и вебхук).
const maxRequestBytes = 50 << 20 // 50 MiB

// App связывает хранилище, сессии и файловую область в хендлеры.
// Собирается один раз в main, глобалей нет.
type App struct {
	Store        storage.Store
	Sessions     *sessions.Manager
	Uploads      uploads.Dir
	Telegram     *telegram.Client // nil, если токен не задан
	TemplatesDir string           // по умолчанию web/templates
}

func (a *App) tpl(names ...string) []string {
	dir := a.TemplatesDir
	if dir == "" {
		dir = filepath.Join("web", "templates")
	}
	out := make([]string, 0, len(names)+1)
	out = append(out, filepath.Join(dir, "base.html"))
	for _, n := range names {
		out = append(out, filepath.Join(dir, n))
	}
	return out
}

// render — единый рендер страниц: прокидывает текущего пользователя
// и флэш-сообщения во все шаблоны.
func (a *App) render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	u := a.currentUser(r)
	data["User"] = u
	data["IsAuthed"] = u != nil
	data["Year"] = time.Now().Year()
	data["Flashes"] = a.Sessions.Flashes(w, r)

	tmpl, err := template.ParseFiles(a.tpl(page)...)
	if err != nil {
		http.Error(w, "Ошибка шаблона: "+err.Error(), http.StatusInternalServerError)
		return
	}
	_ = tmpl.ExecuteTemplate(w, "base", data)
}

// currentUser достаёт пользователя текущей сессии; nil для анонима
// и для сессии с уже удалённым пользователем.
func (a *App) currentUser(r *http.Request) *models.User {
	id, ok := a.Sessions.UserID(r)
	if !ok {
		return nil
	}
	u, err := a.Store.UserByID(r.Context(), id)
	if err != nil {
		return nil
	}
	return u
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
