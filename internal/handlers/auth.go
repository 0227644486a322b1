package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"mediacenter/internal/auth"
	"mediacenter/internal/storage"
)

// ShowLogin отображает страницу входа.
func (a *App) ShowLogin(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "login.html", map[string]any{
		"Title": "Вход",
	})
}

// HandleLogin обрабатывает форму входа. Неизвестный логин и неверный
// пароль дают один и тот же ответ — по ошибке нельзя понять,
// какая половина не совпала.
func (a *App) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.Sessions.AddFlash(w, r, "danger", "Ошибка формы")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	u, err := a.Store.UserByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		a.Sessions.AddFlash(w, r, "danger", "Ошибка БД")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if u == nil || !auth.CheckPassword(password, u.PasswordHash) {
		a.Sessions.AddFlash(w, r, "danger", "Неверные данные")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := a.Sessions.SetUserID(w, r, u.ID); err != nil {
		log.Printf("session save error: %v", err)
		a.Sessions.AddFlash(w, r, "danger", "Ошибка сессии")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	a.Sessions.AddFlash(w, r, "success", "Выполнен вход")
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleLogout снимает сессию и возвращает на главную.
// Повторный выход безвреден.
func (a *App) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.Sessions.ClearUserID(w, r); err != nil {
		http.Error(w, "Ошибка выхода", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
