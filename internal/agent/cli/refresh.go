package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/config"
)

var errNoRefreshToken = errors.New("no refresh_token in config, run: taskkeeper login")

// refreshTokens меняет сохранённый refresh токен на новую пару и сразу пишет её на диск.
//
// Сервер ротирует refresh при каждом обмене, поэтому старая пара после успешного
// ответа недействительна и в памяти не остаётся.
func (app *App) refreshTokens(c *api.Client) error {
	if app.Creds.RefreshToken == "" {
		return errNoRefreshToken
	}

	resp, err := c.Refresh(app.Creds.RefreshToken)
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("session expired, run: taskkeeper login (%w)", err)
		}
		return err
	}

	app.Creds.AccessToken = resp.AccessToken
	app.Creds.RefreshToken = resp.RefreshToken
	return config.Save(app.CredsPath, app.Creds)
}

// NewRefreshCmd создаёт команду ручного обновления пары токенов.
//
// Обычно она не нужна: команды с авторизацией сами обновляют пару при ответе 401.
//
//	taskkeeper refresh
func NewRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Обновить access токен по refresh токену",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.refreshTokens(NewAPIClient(app.ServerURL)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "refresh ok (tokens updated)")
			return nil
		},
	}
}
