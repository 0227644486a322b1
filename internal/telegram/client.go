// Package telegram — приём вебхуков Bot API и докачка файлов постов.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Update — входящее обновление Bot API. Нам интересны только посты;
// прочие типы обновлений игнорируются без ошибки.
type Update struct {
	UpdateID    int64    `json:"update_id"`
	Message     *Message `json:"message"`
	ChannelPost *Message `json:"channel_post"`
}

// Message — пост или сообщение. У фото-постов текст лежит в caption.
type Message struct {
	Text    string      `json:"text"`
	Caption string      `json:"caption"`
	Photo   []PhotoSize `json:"photo"`
}

// PhotoSize — один из вариантов фото; Bot API отдаёт их по возрастанию
// разрешения, последний — самый крупный.
type PhotoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Client ходит в Bot API за файлами. BaseURL подменяется в тестах.
type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

const defaultBaseURL = "https://api.telegram.org"

func NewClient(token string) *Client {
	return &Client{
		Token:   token,
		BaseURL: defaultBaseURL,
		// Bot API без явного таймаута может висеть бесконечно
		HTTP: &http.Client{Timeout: 15 * time.Second},
	}
}

type getFileResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
}

// GetFile резолвит file_id в относительный путь на файловом сервере
// Bot API (первый шаг двухшаговой скачки).
func (c *Client) GetFile(ctx context.Context, fileID string) (string, error) {
	url := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", c.BaseURL, c.Token, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("telegram: getFile: %w", err)
	}
	defer resp.Body.Close()

	var out getFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("telegram: getFile decode: %w", err)
	}
	if !out.OK || out.Result.FilePath == "" {
		return "", fmt.Errorf("telegram: getFile failed: %s", out.Description)
	}
	return out.Result.FilePath, nil
}

// Download открывает поток байт файла по пути из GetFile.
// Закрыть тело должен вызывающий.
func (c *Client) Download(ctx context.Context, filePath string) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/file/bot%s/%s", c.BaseURL, c.Token, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram: download: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("telegram: download: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
