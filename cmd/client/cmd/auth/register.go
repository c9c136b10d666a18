// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client/view"
	"vidshare/internal/domain/user"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере.

После регистрации войдите в систему: vidshare auth login`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Получаем приложение из контекста
		deps, err := types.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := deps.Prompt

		fmt.Fprintln(out, "=== Регистрация нового пользователя ===")
		fmt.Fprintln(out)

		var form user.RegisterForm
		if form.Username, err = p.Line("Имя пользователя: "); err != nil {
			return err
		}
		if form.Email, err = p.Line("Email: "); err != nil {
			return err
		}
		if form.Password, err = p.Password("Пароль: "); err != nil {
			return err
		}
		if form.ConfirmPassword, err = p.Password("Повторите пароль: "); err != nil {
			return err
		}

		gate := view.NewGate(deps.App.Session(), deps.Log)
		rv := view.NewRegisterView(deps.App, gate, deps.Log, deps.ViewOptions()...)
		// переход на экран входа в CLI не нужен
		defer rv.Close()

		rv.SetForm(form)

		fmt.Fprintln(out, "Регистрация...")
		if err := rv.Submit(cmd.Context()); err != nil {
			return types.FromStatus(rv.Status(), err)
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "✅ %s\n", rv.Status().Message)
		fmt.Fprintln(out, "Теперь вы можете войти в систему: vidshare auth login")

		return nil
	},
}
