package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/models"
)

// NewMeCmd выводит профиль текущего пользователя.
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Показать текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user models.User
			err := app.authorized(func(c *api.Client, token string) error {
				var err error
				user, err = c.Me(token)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "id=%s\nusername=%s\nemail=%s\ncreated_at=%s\n",
				user.ID, user.Username, user.Email, user.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}
