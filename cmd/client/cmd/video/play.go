package video

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/prompt"
	"vidshare/cmd/client/cmd/types"
)

var openPlayer bool

var PlayCmd = &cobra.Command{
	Use:   "play ID",
	Short: "Воспроизвести видео",
	Long: `Печатает адрес потока видео и отмечает просмотр.

С флагом --open адрес открывается системным обработчиком.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := types.Authenticated(cmd.Context())
		if err != nil {
			return err
		}

		v, err := deps.App.FindVideo(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		lv := newListView(cmd, deps)
		url := lv.MediaURL(*v)
		fmt.Fprintln(cmd.OutOrStdout(), url)

		if openPlayer {
			if err := openURL(url); err != nil {
				prompt.Warn(cmd.ErrOrStderr(), fmt.Sprintf("не удалось открыть плеер: %v", err))
			}
		}

		// воспроизведение началось: учитываем просмотр
		if err := lv.RecordView(cmd.Context(), v.ID); err != nil {
			deps.Log.Warn("Просмотр не учтен", "id", v.ID, "error", err)
		}
		return nil
	},
}

func openURL(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	return c.Start()
}

func init() {
	PlayCmd.Flags().BoolVar(&openPlayer, "open", false, "открыть видео в системном плеере")
}
