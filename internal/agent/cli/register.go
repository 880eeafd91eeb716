package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Обязательные флаги --username и --email. Пароль берётся из --password,
// из STDIN (--password-stdin) или запрашивается скрытым вводом.
//
// Пример использования:
//
//	taskkeeper register --username alice --email alice@example.com
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		username, email, password string
		passwordFromStdin         bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Username: 3-32 символа [A-Za-z0-9_.-]. Username и email должны быть уникальны.

Пример:
  taskkeeper register --username alice --email alice@example.com
  echo "StrongPass123" | taskkeeper register --username alice --email alice@example.com --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password, passwordFromStdin)
			if err != nil {
				return err
			}

			c := NewAPIClient(app.ServerURL)
			// создаёт пользователя на сервере
			resp, err := c.Register(username, email, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registration successful (user_id=%s)\n", resp.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for registration")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from STDIN (for scripts)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}
