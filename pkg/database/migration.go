package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RunMigrations применяет SQL-файлы из каталога migrationsDir в порядке
// их числовых префиксов. Каждая миграция выполняется в своей транзакции
// и отмечается в таблице migrations, повторный запуск её пропускает.
func RunMigrations(ctx context.Context, db *pgxpool.Pool, migrationsDir string, logger *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("не удалось создать таблицу миграций: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := db.Query(ctx, "SELECT version FROM migrations")
	if err != nil {
		return fmt.Errorf("не удалось прочитать выполненные миграции: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("не удалось прочитать версию миграции: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка чтения выполненных миграций: %w", err)
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("не удалось прочитать каталог миграций: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		version, name, ok := strings.Cut(file, "_")
		if !ok {
			logger.Warn("пропущен файл миграции без числового префикса", zap.String("file", file))
			continue
		}
		name = strings.TrimSuffix(name, ".sql")

		if applied[version] {
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, file))
		if err != nil {
			return fmt.Errorf("не удалось прочитать миграцию %s: %w", file, err)
		}

		if err := applyMigration(ctx, db, version, name, string(content)); err != nil {
			return err
		}

		logger.Info("миграция выполнена", zap.String("version", version), zap.String("name", name))
	}

	return nil
}

func applyMigration(ctx context.Context, db *pgxpool.Pool, version, name, sql string) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию миграции %s: %w", version, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("миграция %s_%s завершилась ошибкой: %w", version, name, err)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO migrations (version, name, applied_at) VALUES ($1, $2, $3)",
		version, name, time.Now(),
	); err != nil {
		return fmt.Errorf("не удалось отметить миграцию %s: %w", version, err)
	}

	return tx.Commit(ctx)
}
