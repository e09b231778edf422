package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplySchema ejecuta los scripts de migrations/ en orden de nombre.
// Los scripts son idempotentes (IF NOT EXISTS).
func ApplySchema(ctx context.Context, q Querier) error {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(files)
	for _, name := range files {
		sql, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		if _, err := q.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("aplicar %s: %w", name, err)
		}
	}
	return nil
}
