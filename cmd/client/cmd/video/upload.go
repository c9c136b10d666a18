package video

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client/view"
)

var uploadTitle string

var UploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Загрузить видео",
	Long: `Загрузка видеофайла на сервер.

Разрешены MP4, WebM, Ogg и QuickTime. Проверку типа можно отключить
настройкой STRICT_MEDIA_TYPES=false.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := types.Authenticated(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		uv := view.NewUploadView(deps.App, deps.Log, nil, deps.ViewOptions()...)
		uv.SetTitle(uploadTitle)
		if err := uv.SelectFile(args[0]); err != nil {
			return types.FromStatus(uv.Status(), err)
		}

		f := uv.File()
		fmt.Fprintf(out, "Загрузка %s (%s, %s)...\n", f.Name, f.ContentType, formatSize(f.Size))

		if err := uv.Submit(cmd.Context()); err != nil {
			return types.FromStatus(uv.Status(), err)
		}

		fmt.Fprintln(out, "✅ Видео загружено")
		return nil
	},
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	UploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "название видео")
}
