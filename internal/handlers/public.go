package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mediacenter/internal/models"
	"mediacenter/internal/storage"
)

/* ========= ПУБЛИЧНЫЕ СТРАНИЦЫ ========= */

// Index — лента: 20 свежих новостей, направления проектов, 8 фото.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	news, err := a.Store.ListNews(r.Context(), 20)
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	photos, err := a.Store.LatestPhotos(r.Context(), 8)
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	a.render(w, r, "index.html", map[string]any{
		"Title":      "Главная",
		"News":       news,
		"Categories": models.ProjectCategories(),
		"Photos":     photos,
	})
}

func (a *App) NewsView(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	n, err := a.Store.NewsByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	a.render(w, r, "news_item.html", map[string]any{
		"Title": n.Title,
		"News":  n,
	})
}

func (a *App) Gallery(w http.ResponseWriter, r *http.Request) {
	photos, err := a.Store.ListPhotos(r.Context())
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	a.render(w, r, "gallery.html", map[string]any{
		"Title":  "Галерея",
		"Photos": photos,
	})
}

func (a *App) Projects(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "projects.html", map[string]any{
		"Title":      "Проекты",
		"Categories": models.ProjectCategories(),
	})
}

// Team — все пользователи, кроме администраторов.
func (a *App) Team(w http.ResponseWriter, r *http.Request) {
	team, err := a.Store.TeamMembers(r.Context())
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	a.render(w, r, "team.html", map[string]any{
		"Title": "Команда",
		"Team":  team,
	})
}
