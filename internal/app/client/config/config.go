package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAPIURL        = "http://localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".vidshare"
	defaultRedirectDelay = 2000
)

type Config struct {
	Env              string        `mapstructure:"app_env"`
	APIURL           string        `mapstructure:"api_url"`
	LogLevel         string        `mapstructure:"log_level"`
	ConfigDir        string        `mapstructure:"config_dir"`
	TokenPath        string        `mapstructure:"token_path"`
	CachePath        string        `mapstructure:"cache_path"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout_seconds"`
	RedirectDelay    time.Duration `mapstructure:"redirect_delay_ms"`
	StrictMediaTypes bool          `mapstructure:"strict_media_types"`
	ConfirmDelete    bool          `mapstructure:"confirm_delete"`
}

// Load читает .env, переменные окружения и уже прочитанный viper-конфиг
func Load() (*Config, error) {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("API_URL", defaultAPIURL)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 0)
	viper.SetDefault("REDIRECT_DELAY_MS", defaultRedirectDelay)
	viper.SetDefault("STRICT_MEDIA_TYPES", true)
	viper.SetDefault("CONFIRM_DELETE", true)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	tokenPath := viper.GetString("TOKEN_PATH")
	if tokenPath == "" {
		tokenPath = filepath.Join(configDir, "token")
	}
	cachePath := viper.GetString("CACHE_PATH")
	if cachePath == "" {
		cachePath = filepath.Join(configDir, "videos.db")
	}

	config := &Config{
		Env:              viper.GetString("APP_ENV"),
		APIURL:           strings.TrimRight(viper.GetString("API_URL"), "/"),
		LogLevel:         viper.GetString("LOG_LEVEL"),
		ConfigDir:        configDir,
		TokenPath:        tokenPath,
		CachePath:        cachePath,
		RequestTimeout:   time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		RedirectDelay:    time.Duration(viper.GetInt("REDIRECT_DELAY_MS")) * time.Millisecond,
		StrictMediaTypes: viper.GetBool("STRICT_MEDIA_TYPES"),
		ConfirmDelete:    viper.GetBool("CONFIRM_DELETE"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url не может быть пустым")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url должен быть абсолютным URL: %q", c.APIURL)
	}
	if c.TokenPath == "" {
		return fmt.Errorf("token_path не может быть пустым")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout_seconds не может быть отрицательным")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}
