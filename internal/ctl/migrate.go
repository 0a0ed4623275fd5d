package ctl

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/config"
)

// NewMigrateCmd создаёт команду применения миграций.
//
// Пример использования:
//
//	articlectl migrate
//	articlectl migrate --config ./configs/server.yaml
func NewMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции базы данных",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sql.Open("pgx", app.Config.DB.DSN)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			if err := db.Ping(); err != nil {
				return fmt.Errorf("ping db: %w", err)
			}

			if err := config.RunMigrations(db, app.Config.Migrations.Path); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
