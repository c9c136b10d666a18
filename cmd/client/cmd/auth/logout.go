package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client/view"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Удаляет сохраненный токен. Сервер об этом не уведомляется.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		deps, err := types.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		gate := view.NewGate(deps.App.Session(), deps.Log)
		if err := gate.Logout(); err != nil {
			return fmt.Errorf("ошибка удаления токена: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Выход выполнен")
		return nil
	},
}
