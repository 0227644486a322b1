package sessions

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

func init() {
	// Flash уезжает в куку через encoding/gob — тип надо зарегистрировать.
	gob.Register(Flash{})
}

const sessionName = "mc_session"

// Flash — одноразовое сообщение для следующей страницы.
type Flash struct {
	Category string // success | danger
	Message  string
}

// Manager оборачивает CookieStore. Создаётся один раз в main
// и передаётся хендлерам — вместо init() и пакетной глобали.
type Manager struct {
	store *sessions.CookieStore
}

// New строит менеджер сессий из секрета. Из одного секрета делаем
// два ключа: подпись + шифрование (устойчивее, чем только подпись).
func New(secret string, secure bool) *Manager {
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store := sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60, // 7 дней
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode, // кука по GET тоже отправится
		Secure:   secure,
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, sessionName)
}

// SetUserID привязывает сессию к пользователю (выставит Set-Cookie).
func (m *Manager) SetUserID(w http.ResponseWriter, r *http.Request, id int64) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	s.Values["user_id"] = id
	return s.Save(r, w)
}

// UserID возвращает id залогиненного пользователя, если сессия валидна.
func (m *Manager) UserID(r *http.Request) (int64, bool) {
	s, err := m.get(r)
	if err != nil {
		return 0, false
	}
	if v, ok := s.Values["user_id"].(int64); ok {
		return v, true
	}
	return 0, false
}

// ClearUserID разлогинивает; повторный вызов безвреден.
func (m *Manager) ClearUserID(w http.ResponseWriter, r *http.Request) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	delete(s.Values, "user_id")
	return s.Save(r, w)
}

// AddFlash кладёт сообщение в сессию до следующего рендера.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	s, err := m.get(r)
	if err != nil {
		return
	}
	s.AddFlash(Flash{Category: category, Message: message})
	_ = s.Save(r, w)
}

// Flashes забирает накопленные сообщения и сразу их гасит.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s, err := m.get(r)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w)

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}
