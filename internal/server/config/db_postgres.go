// Package config содержит инициализацию подключения к базе данных сервера.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - настройку пула соединений;
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
package config

import (
	"database/sql"

	"github.com/jotvibfeng/development-platforms-ca/internal/shared/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// InitDB открывает подключение к базе данных по настройкам из конфига,
// настраивает пул соединений, проверяет доступность базы и применяет
// миграции (если они включены).
//
// Возвращает готовый *sql.DB; закрытие — на вызывающей стороне.
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func InitDB(cfg *Config) (*sql.DB, error) {
	customLog := logger.NewHTTPLogger().Logger.Sugar()

	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		customLog.Errorf("error to connect db: %v", err)
		return nil, err
	}

	// настройки пула соединений
	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}
	if cfg.DB.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.DB.ConnMaxIdleTime)
	}

	if err = db.Ping(); err != nil {
		customLog.Errorf("error check db connection: %v", err)
		db.Close()
		return nil, err
	}

	if cfg.Migrations.Enabled {
		if err := RunMigrations(db, cfg.Migrations.Path); err != nil {
			db.Close()
			return nil, err
		}
		customLog.Info("migrations applied successfully")
	}

	return db, nil
}

// RunMigrations применяет миграции к открытому подключению.
//
// sourcePath — путь к каталогу миграций в формате golang-migrate,
// например "file://migrations/postgres".
func RunMigrations(db *sql.DB, sourcePath string) error {
	customLog := logger.NewHTTPLogger().Logger.Sugar()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		customLog.Errorf("error creating migration driver: %v", err)
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(sourcePath, "postgres", driver)
	if err != nil {
		customLog.Errorf("error creating migrations: %v", err)
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		customLog.Errorf("error applying migrations: %v", err)
		return err
	}

	return nil
}
