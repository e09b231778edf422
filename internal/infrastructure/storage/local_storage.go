// Package storage guarda los laudos finales en el sistema de archivos local (MEDIA_ROOT).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/prisma-api/internal/application/ports"
)

var _ ports.DocumentStorage = (*LocalStorage)(nil)

// ErrInvalidPath ruta fuera de la raíz o absoluta.
var ErrInvalidPath = errors.New("storage: ruta inválida")

// LocalStorage archivos bajo un directorio raíz. Las rutas son relativas y usan "/".
type LocalStorage struct {
	root string
}

// NewLocalStorage crea la raíz si no existe.
func NewLocalStorage(root string) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolver raíz: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear raíz: %w", err)
	}
	return &LocalStorage{root: abs}, nil
}

// resolve convierte la ruta relativa en absoluta sin permitir escapar de la raíz.
func (s *LocalStorage) resolve(path string) (string, error) {
	if path == "" || strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Exists informa si el archivo existe.
func (s *LocalStorage) Exists(_ context.Context, path string) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// Open abre el archivo para lectura; el llamador lo cierra.
func (s *LocalStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Save escribe r en path (reemplaza si existe) y devuelve la ruta relativa guardada.
// Escribe en un temporal y renombra para no dejar archivos a medias.
func (s *LocalStorage) Save(ctx context.Context, path string, r io.Reader) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("storage: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("storage: renombrar: %w", err)
	}
	return filepath.ToSlash(path), nil
}
