package video

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
)

var ViewCmd = &cobra.Command{
	Use:   "view ID",
	Short: "Отметить просмотр видео",
	Long:  `Увеличивает счетчик просмотров и показывает обновленное значение.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := types.Authenticated(cmd.Context())
		if err != nil {
			return err
		}

		lv := newListView(cmd, deps)
		if err := lv.RecordView(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка учета просмотра: %w", err)
		}

		for _, v := range lv.Videos() {
			if v.ID == args[0] {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d просмотров\n", v.Title, v.Views)
				return nil
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Просмотр учтен")
		return nil
	},
}
