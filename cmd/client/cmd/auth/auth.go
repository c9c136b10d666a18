// Package auth команды регистрации, входа и выхода
package auth

import "github.com/spf13/cobra"

// AuthCmd группирует команды сессии. Токен хранится в директории конфигурации.
var AuthCmd = &cobra.Command{
	Use:     "auth",
	Aliases: []string{"account"},
	Short:   "Вход, регистрация и сессия",
	Long:    `Регистрация, вход, выход и проверка состояния сессии.`,
}
