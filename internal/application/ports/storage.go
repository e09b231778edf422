package ports

import (
	"context"
	"io"
)

// DocumentStorage almacenamiento de los laudos finales. Las rutas son relativas a la raíz del storage.
type DocumentStorage interface {
	Exists(ctx context.Context, path string) (bool, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Save guarda el contenido y devuelve la ruta relativa con la que se debe referenciar.
	Save(ctx context.Context, path string, r io.Reader) (string, error)
}
