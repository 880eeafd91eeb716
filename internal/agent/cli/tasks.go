package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/utils"
)

var errNothingToUpdate = errors.New("nothing to update: set --title, --description or --priority")

// NewTasksCmd создаёт группу команд для работы с задачами.
//
//	taskkeeper tasks list [--status all|pending|done] [--priority low|medium|high]
//	taskkeeper tasks add <title> [--description ...] [--priority ...]
//	taskkeeper tasks edit <id> [--title ...] [--description ...] [--priority ...]
//	taskkeeper tasks toggle <id>
//	taskkeeper tasks rm <id>
//	taskkeeper tasks stats
func NewTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Работа с задачами",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksToggleCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))
	cmd.AddCommand(newTasksStatsCmd(app))

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var status, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список задач (новые первыми)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var completed *bool
			switch strings.ToLower(status) {
			case "", "all":
			case "pending":
				completed = utils.Ptr(false)
			case "done":
				completed = utils.Ptr(true)
			default:
				return fmt.Errorf("unknown --status %q (all|pending|done)", status)
			}

			var tasks []models.Task
			err := app.authorized(func(c *api.Client, token string) error {
				var err error
				tasks, err = c.ListTasks(token, completed, priority)
				return err
			})
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "all|pending|done")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high")

	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var description, priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Создать задачу",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.CreateTaskRequest{
				Title:       strings.Join(args, " "),
				Description: description,
				Priority:    priority,
			}

			var task models.Task
			err := app.authorized(func(c *api.Client, token string) error {
				var err error
				task, err = c.CreateTask(token, req)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created task %s (%s)\n", task.ID, task.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high (default medium)")

	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var title, description, priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Изменить задачу (только переданные поля)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.UpdateTaskRequest
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				req.Priority = &priority
			}
			if req.Title == nil && req.Description == nil && req.Priority == nil {
				return errNothingToUpdate
			}

			var task models.Task
			err := app.authorized(func(c *api.Client, token string) error {
				var err error
				task, err = c.UpdateTask(token, args[0], req)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated task %s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high")

	return cmd
}

func newTasksToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Переключить выполнение: pending → done, done → pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var completed bool
			err := app.authorized(func(c *api.Client, token string) error {
				var err error
				completed, err = c.ToggleTask(token, args[0])
				return err
			})
			if err != nil {
				return err
			}

			state := "pending"
			if completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "task %s is now %s\n", args[0], state)
			return nil
		},
	}
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Удалить задачу",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.authorized(func(c *api.Client, token string) error {
				return c.DeleteTask(token, args[0])
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted task %s\n", args[0])
			return nil
		},
	}
}

func newTasksStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Статистика задач",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var st models.TaskStats
			err := app.authorized(func(c *api.Client, token string) error {
				var err error
				st, err = c.TaskStats(token)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"total=%d\ncompleted=%d\npending=%d\npending_by_priority: high=%d medium=%d low=%d\n",
				st.Total, st.Completed, st.Pending,
				st.ByPriority.High, st.ByPriority.Medium, st.ByPriority.Low,
			)
			return nil
		},
	}
}

func printTasks(w io.Writer, tasks []models.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRIORITY\tDONE\tTITLE")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t[%s]\t%s\n", t.ID, t.Priority, done, t.Title)
	}
	tw.Flush()
}
