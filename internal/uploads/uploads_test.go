package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"Фото с праздника.JPG", "foto_s_prazdnika.jpg"},
		{"../../etc/passwd", "passwd"},
		{"report final.pdf", "report_final.pdf"},
		{"???.png", "file.png"},
		{"no-ext", "no_ext"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), "input %q", tt.in)
	}
}

func TestAllowedExtensions(t *testing.T) {
	assert.True(t, AllowedImage("a.png"))
	assert.True(t, AllowedImage("a.JPG"))
	assert.True(t, AllowedImage("a.webp"))
	assert.False(t, AllowedImage("payload.exe"))
	assert.False(t, AllowedImage("noext"))

	assert.True(t, AllowedDocument("doc.pdf"))
	assert.True(t, AllowedDocument("DOC.PDF"))
	assert.False(t, AllowedDocument("doc.docx"))
}

func TestSaveWritesFile(t *testing.T) {
	d := New(t.TempDir())

	rel, err := d.Save(SubdirPhotos, "pic.jpg", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "photos/pic.jpg", rel)

	got, err := os.ReadFile(filepath.Join(d.Root, "photos", "pic.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(got))
}

func TestSaveUniqueKeepsExisting(t *testing.T) {
	d := New(t.TempDir())

	first, err := d.SaveUnique(SubdirPhotos, "pic.jpg", strings.NewReader("first"))
	require.NoError(t, err)
	second, err := d.SaveUnique(SubdirPhotos, "pic.jpg", strings.NewReader("second"))
	require.NoError(t, err)

	// коллизия не перетирает старый файл, новое имя отличается
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(second, ".jpg"))

	got, err := os.ReadFile(filepath.Join(d.Root, "photos", "pic.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	got2, err := os.ReadFile(filepath.Join(d.Root, filepath.FromSlash(second)))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got2))
}
