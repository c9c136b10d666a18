package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client"
	"vidshare/internal/app/client/tui"
	"vidshare/internal/utils/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Интерактивный режим",
	Long: `Запускает терминальный интерфейс: вход, регистрация,
список видео, загрузка и удаление.

Логи пишутся в tui.log в директории конфигурации.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		deps, err := types.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		// Логи в файл, чтобы не мешать отрисовке
		level := deps.Config.LogLevel
		if debug || (level == "" && !deps.Config.IsProd()) {
			level = "debug"
		}
		fileLog, closer, err := logger.NewFile(filepath.Join(deps.Config.ConfigDir, "tui.log"), level)
		if err != nil {
			return fmt.Errorf("ошибка создания файла логов: %w", err)
		}
		defer closer.Close()

		// Пересоздаем приложение с файловым логгером
		if err := deps.App.Close(); err != nil {
			deps.Log.Warn("Ошибка закрытия приложения", "error", err)
		}
		app, err := client.New(deps.Config, fileLog)
		if err != nil {
			return fmt.Errorf("ошибка инициализации приложения: %w", err)
		}
		deps.App = app
		deps.Log = fileLog

		model := tui.NewModel(cmd.Context(), app, app.Session(), fileLog, deps.ViewOptions()...)
		if err := tui.Run(cmd.Context(), model); err != nil {
			return fmt.Errorf("ошибка запуска интерфейса: %w", err)
		}
		return nil
	},
}
