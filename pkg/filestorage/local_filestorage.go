package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// publicPrefix é a rota estática que serve o diretório de uploads.
const publicPrefix = "/uploads/"

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
	FullPath(filePath string) string
}

// LocalFileStorage grava fotos e planilhas recebidas num diretório local.
type LocalFileStorage struct {
	root string
}

func NewLocalFileStorage(root string) (FileStorageInterface, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("diretório de uploads inválido %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("não foi possível criar o diretório de uploads: %w", err)
	}
	return &LocalFileStorage{root: abs}, nil
}

// Save devolve o caminho relativo com barras, pronto para virar URL em /uploads/.
// Se a cópia falhar o arquivo parcial é removido.
func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	name := fmt.Sprintf("%s-%s%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString(),
		strings.ToLower(filepath.Ext(originalFileName)),
	)
	relPath := filepath.ToSlash(filepath.Join(prefix, name))
	fullPath := s.FullPath(relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("falha ao gravar %s: %w", originalFileName, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", err
	}
	return relPath, nil
}

// Delete aceita o caminho relativo ou a URL pública. Arquivo inexistente não é erro.
func (s *LocalFileStorage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}
	err := os.Remove(s.FullPath(filePath))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// FullPath nunca sai do diretório raiz: ".." no caminho é descartado.
func (s *LocalFileStorage) FullPath(filePath string) string {
	rel := strings.TrimPrefix(filePath, publicPrefix)
	rel = strings.TrimPrefix(rel, strings.TrimPrefix(publicPrefix, "/"))
	clean := filepath.Clean("/" + filepath.FromSlash(rel))
	return filepath.Join(s.root, clean)
}
