// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"vidshare/cmd/client/cmd/prompt"
	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client"
	"vidshare/internal/app/client/config"
	"vidshare/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "vidshare",
	Short: "vidshare - клиент сервиса видео",
	Long: `vidshare - клиент сервиса обмена видео.

Позволяет зарегистрироваться, войти, просматривать список видео,
загружать, воспроизводить и удалять их из командной строки
или в интерактивном режиме (vidshare tui).`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, types.ErrReported) {
			prompt.Alert(os.Stderr, fmt.Sprintf("Ошибка: %v", err))
		}
		stop()
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.APIURL = strings.TrimRight(serverURL, "/")
	}

	// Настраиваем логгер
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log := logger.Setup(cfg.Env, level)

	// Создаем приложение
	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	deps := &types.Deps{
		App:    app,
		Config: cfg,
		Log:    log,
		Prompt: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		JSON:   jsonOutput,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, deps))

	log.Debug("Клиент инициализирован",
		slog.String("api_url", cfg.APIURL),
		slog.String("config_dir", cfg.ConfigDir),
	)
	return nil
}

func closeApp(cmd *cobra.Command, _ []string) error {
	deps, err := types.FromContext(cmd.Context())
	if err != nil {
		return nil
	}
	return deps.App.Close()
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".vidshare"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load()
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL сервера API")

	// Команды будут добавлены в init() соответствующих файлов
}
