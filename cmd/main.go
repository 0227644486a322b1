package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mediacenter/internal/config"
	"mediacenter/internal/db"
	"mediacenter/internal/handlers"
	mw "mediacenter/internal/middleware"
	"mediacenter/internal/models"
	"mediacenter/internal/sessions"
	"mediacenter/internal/storage"
	"mediacenter/internal/telegram"
	"mediacenter/internal/uploads"
)

func main() {
	cfg := config.Load()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(context.Background(), conn); err != nil {
		log.Fatal(err)
	}

	// Собираем всё один раз и передаём вниз — никаких глобалей.
	app := &handlers.App{
		Store:    storage.NewPostgres(conn),
		Sessions: sessions.New(cfg.SecretKey, cfg.HTTPS),
		Uploads:  uploads.New(cfg.UploadDir),
	}
	if cfg.BotToken != "" {
		app.Telegram = telegram.NewClient(cfg.BotToken)
	} else {
		log.Println("telegram: token not set, webhook will refuse updates")
	}

	r := chi.NewRouter()

	// базовые middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RedirectSlashes)

	// статика и загруженные файлы
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// ---------- Публичные страницы ----------
	r.Get("/", app.Index)
	r.Get("/news/{id}", app.NewsView)
	r.Get("/gallery", app.Gallery)
	r.Get("/projects", app.Projects)
	r.Get("/team", app.Team)

	// ---------- Аутентификация ----------
	r.Get("/login", app.ShowLogin)
	r.Post("/login", app.HandleLogin)
	r.With(mw.RequireUser(app.Sessions, app.Store)).Get("/logout", app.HandleLogout)

	// ---------- Админка ----------
	// TODO: в allowed перечислено всё перечисление ролей, то есть гейт
	// пропускает любого залогиненного. Сузить до admin/curator, когда
	// продукт подтвердит, что press в админке не нужен.
	gate := mw.RequireRole(app.Sessions, app.Store,
		models.RoleAdmin, models.RoleCurator, models.RolePress)
	r.Group(func(g chi.Router) {
		g.Use(gate)

		g.Get("/admin", app.AdminPage)
		g.Post("/admin/post_news", app.PostNews)
		g.Post("/admin/upload_photo", app.UploadPhoto)
		g.Post("/admin/upload_doc", app.UploadDoc)
	})

	// ---------- Telegram ----------
	r.Post("/tg-webhook", app.TelegramWebhook)

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
