package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	embedded "github.com/wecare-app/wecare/migrations"
	"gorm.io/gorm"
)

var sqlMigrationName = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnStatement = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)

type migrationFile struct {
	version string
	name    string
	sql     string
}

// applyEmbeddedMigrations runs every embedded .sql file that has not been
// recorded in schema_migrations yet, in ascending version order.
func applyEmbeddedMigrations(database *gorm.DB) error {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := collectMigrationFiles()
	if err != nil {
		return err
	}

	type appliedVersion struct {
		Version string `gorm:"column:version"`
	}
	applied := make([]appliedVersion, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	appliedSet := make(map[string]struct{}, len(applied))
	for _, row := range applied {
		appliedSet[row.Version] = struct{}{}
	}

	for _, migration := range pending {
		if _, done := appliedSet[migration.version]; done {
			continue
		}
		if err := runMigration(database, migration); err != nil {
			return err
		}
	}
	return nil
}

func collectMigrationFiles() ([]migrationFile, error) {
	entries, err := fs.ReadDir(embedded.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	files := make([]migrationFile, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matches := sqlMigrationName.FindStringSubmatch(entry.Name())
		if len(matches) != 2 {
			continue
		}
		version := matches[1]
		if previous, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, entry.Name())
		}
		seen[version] = entry.Name()

		raw, err := fs.ReadFile(embedded.Files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		files = append(files, migrationFile{version: version, name: entry.Name(), sql: string(raw)})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}

func runMigration(database *gorm.DB, migration migrationFile) error {
	return database.Transaction(func(tx *gorm.DB) error {
		executed := 0
		for _, rawPart := range strings.Split(migration.sql, ";") {
			statement := strings.TrimSpace(rawPart)
			if statement == "" {
				continue
			}
			redundant, err := columnAlreadyPresent(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.name, err)
			}
			if redundant {
				executed++
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.name, statement, err)
			}
			executed++
		}
		if executed == 0 {
			return errors.New("migration has no SQL statements")
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.version, migration.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.name, err)
		}
		return nil
	})
}

// columnAlreadyPresent reports whether an ADD COLUMN statement targets a
// column the table already carries, so bootstrap schemas that include later
// columns do not break older upgrade paths.
func columnAlreadyPresent(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatement.FindStringSubmatch(statement)
	if len(matches) != 3 {
		return false, nil
	}
	table := strings.Trim(matches[1], "\"`[]")
	column := strings.Trim(matches[2], "\"`[]")

	type tableColumn struct {
		Name string `gorm:"column:name"`
	}
	columns := make([]tableColumn, 0)
	escaped := strings.ReplaceAll(table, `"`, `""`)
	if err := database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, escaped)).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, candidate := range columns {
		if strings.EqualFold(candidate.Name, column) {
			return true, nil
		}
	}
	return false, nil
}
