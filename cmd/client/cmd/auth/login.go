// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client/view"
	"vidshare/internal/domain/user"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере.

После входа токен сохраняется локально для последующих операций.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		deps, err := types.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "=== Вход в систему ===")
		fmt.Fprintln(out)

		var creds user.Credentials
		if creds.Email, err = deps.Prompt.Line("Email: "); err != nil {
			return err
		}
		if creds.Password, err = deps.Prompt.Password("Пароль: "); err != nil {
			return err
		}

		session := deps.App.Session()
		gate := view.NewGate(session, deps.Log)
		lv := view.NewLoginView(deps.App, gate, session, deps.Log)
		lv.SetCredentials(creds)

		fmt.Fprintln(out, "Аутентификация...")
		if err := lv.Submit(cmd.Context()); err != nil {
			return types.FromStatus(lv.Status(), err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "✅ Вход выполнен успешно!")
		fmt.Fprintf(out, "Токен сохранен: %s\n", deps.Config.TokenPath)

		return nil
	},
}
