package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя в систему.
//
// Команда аутентифицирует пользователя по username или email,
// получает пару access/refresh токенов и сохраняет их в локальный
// конфигурационный файл.
//
// Пример использования:
//
//	taskkeeper login --login alice --password StrongPass123
func NewLoginCmd(app *App) *cobra.Command {
	var (
		identifier, password string
		passwordFromStdin    bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить access/refresh токены)",
		Long: `Логин пользователя по username или email.

Пример:
  taskkeeper login --login alice
  taskkeeper login --login alice@example.com --password StrongPass123
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password, passwordFromStdin)
			if err != nil {
				return err
			}

			c := NewAPIClient(app.ServerURL)
			// выполняем логин пользователя
			resp, err := c.Login(identifier, pw)
			if err != nil {
				return err
			}

			// сохраняем полученные токены в состоянии приложения
			app.Creds.AccessToken = resp.AccessToken
			app.Creds.RefreshToken = resp.RefreshToken
			app.Creds.Username = resp.User.Username

			// сохраняем токены в локальный конфигурационный файл
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "login ok as %s (tokens saved)\n", resp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&identifier, "login", "", "username or email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from STDIN (for scripts)")
	cmd.MarkFlagRequired("login")

	return cmd
}
