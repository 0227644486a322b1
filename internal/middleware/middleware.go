package middleware

import (
	"context"
	"net/http"

	"mediacenter/internal/models"
	"mediacenter/internal/sessions"
	"mediacenter/internal/storage"
)

type ctxKey int

const userKey ctxKey = iota

// UserFrom возвращает пользователя, положенного в контекст гейтом,
// или nil вне защищённых маршрутов.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// RequireUser пускает только залогиненных (роль не важна) и кладёт
// пользователя в контекст запроса. Аноним уходит на /login.
func RequireUser(sm *sessions.Manager, st storage.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := lookup(sm, st, r)
			if u == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}

// RequireRole — гейт по ролям: аноним уходит на /login, залогиненный
// с ролью вне allowed (или с мусорной ролью в базе) — на главную
// с флэшем об отказе.
func RequireRole(sm *sessions.Manager, st storage.Store, allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[models.Role]bool, len(allowed))
	for _, role := range allowed {
		set[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := lookup(sm, st, r)
			if u == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			if !u.Role.Valid() || !set[u.Role] {
				sm.AddFlash(w, r, "danger", "Доступ запрещён")
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}

// lookup резолвит сессию в пользователя; протухшая сессия
// (пользователь удалён) равносильна анонимной.
func lookup(sm *sessions.Manager, st storage.Store, r *http.Request) *models.User {
	id, ok := sm.UserID(r)
	if !ok {
		return nil
	}
	u, err := st.UserByID(r.Context(), id)
	if err != nil {
		return nil
	}
	return u
}
