package filestorage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_SaveAndDelete(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	path, err := storage.Save(strings.NewReader("conteúdo"), "Foto.PNG", "fotos")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "fotos/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(storage.FullPath(path))
	require.NoError(t, err)
	assert.Equal(t, "conteúdo", string(data))

	require.NoError(t, storage.Delete("/uploads/"+path))
	_, err = os.Stat(storage.FullPath(path))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.Delete("fotos/nao-existe.png"), "arquivo inexistente não é erro")
}

func TestLocalFileStorage_FullPathStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	storage, err := NewLocalFileStorage(root)
	require.NoError(t, err)

	full := storage.FullPath("/uploads/../../etc/passwd")
	assert.True(t, strings.HasPrefix(full, root), full)
}
