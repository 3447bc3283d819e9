package filestorage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG: signature plus IHDR, IDAT and IEND chunks of a 1x1 pixel
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestSaveDataURL(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := ls.SaveDataURL("data:image/png;base64,"+onePixelPNG, "avatars")
	require.NoError(t, err)
	assert.Regexp(t, `^http://localhost:8080/uploads/avatars/[0-9a-f-]{36}\.png$`, url)

	full := ls.GetFullPath(url)
	assert.Equal(t, filepath.Join(dir, "avatars", filepath.Base(url)), full)

	want, _ := base64.StdEncoding.DecodeString(onePixelPNG)
	got, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, ls.DeleteFile(url))
}

func TestSaveDataURLRejectsBadInput(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = ls.SaveDataURL("https://example.com/a.png", "")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, err = ls.SaveDataURL("data:image/png;base64,!!!", "")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	text := base64.StdEncoding.EncodeToString([]byte("just some text"))
	_, err = ls.SaveDataURL("data:image/png;base64,"+text, "")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestRelativeURLsWithoutBaseURL(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	url, err := ls.SaveDataURL("data:image/png;base64,"+onePixelPNG, "")
	require.NoError(t, err)
	assert.Equal(t, "uploads/"+filepath.Base(url), url)
	assert.Equal(t, filepath.Join(dir, filepath.Base(url)), ls.GetFullPath(url))
}
