// cmd/client/cmd/init.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidshare/cmd/client/cmd/auth"
	"vidshare/cmd/client/cmd/prompt"
	"vidshare/cmd/client/cmd/types"
	"vidshare/cmd/client/cmd/video"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать клиент vidshare",
	Long: `Команда init выполняет первоначальную настройку клиента:
	1. Создает директорию конфигурации
	2. Сохраняет текущие настройки в config.yaml
	3. Проверяет соединение с сервером`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		deps, err := types.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		cfg := deps.Config
		out := cmd.OutOrStdout()

		path := filepath.Join(cfg.ConfigDir, "config.yaml")
		if _, err := os.Stat(path); err == nil && !forceInit {
			fmt.Fprintf(out, "Клиент уже инициализирован: %s\n", path)
			return nil
		}

		fmt.Fprintln(out, "=== Инициализация vidshare ===")
		fmt.Fprintln(out)

		v := viper.New()
		v.Set("app_env", cfg.Env)
		v.Set("api_url", cfg.APIURL)
		v.Set("log_level", cfg.LogLevel)
		v.Set("request_timeout_seconds", int(cfg.RequestTimeout/time.Second))
		v.Set("redirect_delay_ms", int(cfg.RedirectDelay/time.Millisecond))
		v.Set("strict_media_types", cfg.StrictMediaTypes)
		v.Set("confirm_delete", cfg.ConfirmDelete)

		if err := v.WriteConfigAs(path); err != nil {
			return fmt.Errorf("ошибка записи конфигурации: %w", err)
		}
		fmt.Fprintf(out, "✓ Конфигурация сохранена: %s\n", path)

		// Проверяем соединение с сервером
		fmt.Fprintln(out, "Проверка соединения с сервером...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := deps.App.CheckConnection(ctx); err != nil {
			prompt.Warn(cmd.ErrOrStderr(), fmt.Sprintf("не удалось подключиться к серверу %s: %v", cfg.APIURL, err))
		} else {
			fmt.Fprintln(out, "✓ Соединение с сервером установлено")
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Что дальше:")
		fmt.Fprintln(out, "1. Зарегистрируйтесь: vidshare auth register")
		fmt.Fprintln(out, "2. Войдите в систему: vidshare auth login")
		fmt.Fprintln(out, "3. Загрузите первое видео: vidshare video upload --title \"...\" FILE")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "перезаписать существующую конфигурацию")
	rootCmd.AddCommand(initCmd)

	// Добавляем команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.StatusCmd)

	// Добавляем команды работы с видео
	rootCmd.AddCommand(video.VideoCmd)
	video.VideoCmd.AddCommand(video.ListCmd)
	video.VideoCmd.AddCommand(video.UploadCmd)
	video.VideoCmd.AddCommand(video.ViewCmd)
	video.VideoCmd.AddCommand(video.PlayCmd)
	video.VideoCmd.AddCommand(video.DownloadCmd)
	video.VideoCmd.AddCommand(video.DeleteCmd)

	rootCmd.AddCommand(tuiCmd)
}
