package video

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client/view"
)

var skipConfirm bool

var DeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Удалить видео",
	Long: `Удаляет видео на сервере после подтверждения.

Флаг --yes пропускает вопрос.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := types.Authenticated(cmd.Context())
		if err != nil {
			return err
		}

		var opts []view.Option
		if skipConfirm {
			opts = append(opts, view.WithConfirmDelete(false))
		}
		lv := newListView(cmd, deps, opts...)

		deleted, err := lv.Delete(cmd.Context(), args[0])
		if err != nil {
			// сообщение уже показано через Alerter
			return types.Reported(err)
		}
		if !deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Удаление отменено")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Видео удалено")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "удалить без подтверждения")
}
