// Package ctl реализует административный CLI articlectl.
//
// Команды работают напрямую с базой данных сервера и нужны для
// эксплуатации: применение миграций и заведение учётных записей.
package ctl

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/config"
)

// App хранит состояние CLI между командами.
type App struct {
	ConfigPath string
	Config     *config.Config
}

// NewRootCmd создаёт корневую команду articlectl.
//
// Конфиг загружается перед выполнением любой подкоманды;
// путь к нему можно переопределить флагом --config.
func NewRootCmd(version, date string) *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:     "articlectl",
		Short:   "Администрирование сервера статей",
		Version: fmt.Sprintf("%s (built %s)", version, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "no .env file loaded: %v\n", err)
			}
			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnvOverrides()
			app.Config = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "./configs/server.yaml", "путь к конфигу сервера")

	root.AddCommand(NewMigrateCmd(app))
	root.AddCommand(NewCreateUserCmd(app))

	return root
}

// Execute запускает CLI и завершает процесс с кодом 1 при ошибке.
func Execute(version, date string) {
	if err := NewRootCmd(version, date).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
