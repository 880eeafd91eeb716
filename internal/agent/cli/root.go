// Package cli реализует командный интерфейс (CLI) клиентского приложения TaskKeeper.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локальных учётных данных (access/refresh токены) из конфигурационного файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/config"
)

// ServerEnv — переменная окружения с адресом сервера по умолчанию.
const ServerEnv = "TASKKEEPER_SERVER"

const defaultServerURL = "https://127.0.0.1:8080"

var errNotLoggedIn = errors.New("no access_token, run: taskkeeper login")

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ServerURL — базовый URL сервера TaskKeeper (например, "https://127.0.0.1:8080").
	ServerURL string

	// CredsPath — путь к файлу с сохранёнными учётными данными (access/refresh токены).
	CredsPath string
	// Creds — загруженные учётные данные из файла конфигурации.
	Creds *config.Credentials
}

// authorized выполняет fn с access токеном.
//
// Если сервер ответил 401 и есть refresh токен, пара токенов обновляется,
// сохраняется на диск и fn повторяется один раз.
func (app *App) authorized(fn func(c *api.Client, token string) error) error {
	if !app.Creds.LoggedIn() {
		return errNotLoggedIn
	}

	c := NewAPIClient(app.ServerURL)
	err := fn(c, app.Creds.AccessToken)
	if !api.IsUnauthorized(err) || app.Creds.RefreshToken == "" {
		return err
	}

	if err := app.refreshTokens(c); err != nil {
		return err
	}

	return fn(c, app.Creds.AccessToken)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE определяется путь к файлу учётных данных и загружаются сохранённые токены.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	serverDefault := os.Getenv(ServerEnv)
	if serverDefault == "" {
		serverDefault = defaultServerURL
	}

	cmd := &cobra.Command{
		Use:   "taskkeeper",
		Short: "TaskKeeper CLI — личный трекер задач",
		Long: `TaskKeeper CLI.

Команды:
  register  Регистрация нового пользователя
  login     Логин (получить access/refresh)
  refresh   Обновить access по refresh токену
  logout    Отозвать сессии и удалить локальные токены
  me        Текущий пользователь
  tasks     Работа с задачами (list, add, edit, toggle, rm, stats)
  version   Версия и дата сборки

Примеры:

Регистрация:
  taskkeeper register --username alice --email alice@example.com

Логин (username или email):
  taskkeeper login --login alice
  (сохраняет access и refresh токены в локальном конфиге)

Задачи:
  taskkeeper tasks add "Купить молоко" --priority high
  taskkeeper tasks list --status pending
  taskkeeper tasks toggle <id>
  taskkeeper tasks stats
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", serverDefault, "server base URL (env "+ServerEnv+")")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewRefreshCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewTasksCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
