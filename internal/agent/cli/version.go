package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd выводит версию клиента, дату сборки и платформу.
// С --short печатается только версия (удобно для скриптов).
//
//	taskkeeper version [--short]
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		Args:  cobra.NoArgs,
		// учётные данные для вывода версии не нужны
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%s\nbuild_date=%s\ngo=%s\nplatform=%s/%s\n",
				buildVersion, buildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print the version only")
	return cmd
}
