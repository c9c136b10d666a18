package auth

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
)

type statusOutput struct {
	Authenticated bool   `json:"authenticated"`
	APIURL        string `json:"api_url"`
	TokenPath     string `json:"token_path"`
}

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Показать состояние сессии",
	RunE: func(cmd *cobra.Command, _ []string) error {
		deps, err := types.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		status := statusOutput{
			Authenticated: deps.App.IsAuthenticated(),
			APIURL:        deps.Config.APIURL,
			TokenPath:     deps.Config.TokenPath,
		}

		out := cmd.OutOrStdout()
		if deps.JSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(status)
		}

		if status.Authenticated {
			fmt.Fprintln(out, "✓ Вход выполнен")
		} else {
			fmt.Fprintln(out, "✗ Вход не выполнен")
		}
		fmt.Fprintf(out, "Сервер: %s\n", status.APIURL)
		return nil
	},
}
