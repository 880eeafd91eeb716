package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/config"
)

// NewLogoutCmd отзывает сессии на сервере и стирает локальные токены.
//
// Просроченный access токен не мешает выходу: локальные токены удаляются в любом случае.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выйти (отозвать refresh-сессии и удалить токены)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds.LoggedIn() {
				err := NewAPIClient(app.ServerURL).Logout(app.Creds.AccessToken)
				if err != nil && !api.IsUnauthorized(err) {
					return err
				}
			}

			app.Creds.Clear()
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
