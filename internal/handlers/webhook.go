package handlers

import (
	"encoding/json"
	"net/http"

	"mediacenter/internal/telegram"
)

// TelegramWebhook — приём обновлений Bot API. Единственный маршрут
// со структурированным JSON-ответом {ok, error?}. Без ретраев и
// ключа идемпотентности: повторная доставка создаёт дубль новости.
func (a *App) TelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if a.Telegram == nil || a.Telegram.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "no token"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	// Текст ошибки уходит вызывающему as-is — так делал и прежний
	// обработчик; для закрытого вебхука это терпимо, но помнить об этом.
	if err := telegram.Ingest(r.Context(), a.Store, a.Uploads, a.Telegram, &upd); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
