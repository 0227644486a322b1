// Package uploads — локальное файловое хранилище сайта:
// <корень>/photos и <корень>/docs, отдаётся наружу через /uploads/.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	SubdirPhotos = "photos"
	SubdirDocs   = "docs"
)

// Допустимые расширения. Проверка только по суффиксу имени —
// содержимое файла не анализируется, подмена content-type не ловится.
var (
	imageExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}
	docExt   = map[string]bool{".pdf": true}
)

// AllowedImage сообщает, похоже ли имя файла на картинку.
func AllowedImage(name string) bool {
	return imageExt[strings.ToLower(filepath.Ext(name))]
}

// AllowedDocument — разрешён только PDF.
func AllowedDocument(name string) bool {
	return docExt[strings.ToLower(filepath.Ext(name))]
}

// Dir — корень файлового хранилища.
type Dir struct {
	Root string
}

func New(root string) Dir {
	return Dir{Root: root}
}

// Save пишет содержимое r в <root>/<subdir>/<sanitized name> и
// возвращает относительный путь (photos/имя.jpg). Существующий файл
// с тем же именем перезаписывается.
func (d Dir) Save(subdir, name string, r io.Reader) (string, error) {
	return d.save(subdir, SanitizeName(name), r)
}

// SaveUnique — как Save, но при коллизии имя не перетирается:
// перед расширением вставляется короткий uuid-фрагмент.
func (d Dir) SaveUnique(subdir, name string, r io.Reader) (string, error) {
	safe := SanitizeName(name)
	if _, err := os.Stat(filepath.Join(d.Root, subdir, safe)); err == nil {
		ext := filepath.Ext(safe)
		base := strings.TrimSuffix(safe, ext)
		safe = fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext)
	}
	return d.save(subdir, safe, r)
}

func (d Dir) save(subdir, name string, r io.Reader) (string, error) {
	dir := filepath.Join(d.Root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("uploads: mkdir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("uploads: create: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("uploads: write: %w", err)
	}
	return subdir + "/" + name, nil
}

var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_.-]+`)

// SanitizeName нормализует имя файла: базовое имя без каталогов,
// кириллица транслитерируется, остаётся [a-z0-9_.-]. Расширение
// сохраняется. Пустой результат заменяется на "file".
func SanitizeName(name string) string {
	name = filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

	var b strings.Builder
	for _, r := range base {
		if val, ok := translitMap[r]; ok {
			b.WriteString(val)
		} else if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' {
			b.WriteRune(r)
		} else if r == ' ' || r == '_' || r == '-' {
			b.WriteRune('_')
		}
	}
	safe := strings.Trim(unsafeChars.ReplaceAllString(b.String(), ""), "_.-")
	if safe == "" {
		safe = "file"
	}
	return safe + unsafeChars.ReplaceAllString(ext, "")
}
