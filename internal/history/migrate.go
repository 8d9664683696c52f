package history

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// migrate runs every embedded .up.sql file in name order. The statements are
// idempotent so this is safe on every open.
func (s *SQLStore) migrate() error {
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
		}
		s.logger.Debugw("applied migration", "file", name)
	}
	return nil
}
