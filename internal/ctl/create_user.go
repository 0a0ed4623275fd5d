package ctl

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/repository"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/service"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

// NewCreateUserCmd создаёт команду заведения учётной записи.
//
// Пароль можно передать флагом --password; без флага он запрашивается
// с терминала без эха.
//
// Пример использования:
//
//	articlectl create-user --email admin@example.com
func NewCreateUserCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Создать учётную запись пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}

			db, err := sql.Open("pgx", app.Config.DB.DSN)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			users := repository.NewUsersRepository(db, app.Config.DB.QueryTimeout)
			auth := service.NewAuthService(users, app.Config)

			id, normalized, err := auth.Register(cmd.Context(), email, password)
			if err != nil {
				if errors.Is(err, serr.ErrAlreadyExists) {
					return fmt.Errorf("user %s already exists", email)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user created: id=%d email=%s\n", id, normalized)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email нового пользователя")
	cmd.Flags().StringVar(&password, "password", "", "пароль (без флага — запрос с терминала)")
	cmd.MarkFlagRequired("email")

	return cmd
}

// readPassword запрашивает пароль с терминала без эха.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin не терминал: передай пароль флагом --password")
	}

	fmt.Fprint(cmd.OutOrStdout(), "password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
