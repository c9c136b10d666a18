package video

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/types"
)

var downloadOutput string

var DownloadCmd = &cobra.Command{
	Use:   "download ID",
	Short: "Скачать видео",
	Long: `Сохраняет файл видео на диск. По умолчанию имя файла совпадает
с именем на сервере.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		deps, err := types.Authenticated(cmd.Context())
		if err != nil {
			return err
		}

		v, err := deps.App.FindVideo(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		path := downloadOutput
		if path == "" {
			path = filepath.Base(v.FilePath)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("ошибка создания файла: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(path)
			}
		}()

		n, err := deps.App.Download(cmd.Context(), v.FilePath, f)
		if err != nil {
			return errors.Join(fmt.Errorf("ошибка скачивания %s", v.ID), err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s сохранено в %s (%s)\n", v.Title, path, formatSize(n))
		return nil
	},
}

func init() {
	DownloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "путь для сохранения файла")
}
