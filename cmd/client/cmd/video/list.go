// cmd/client/cmd/video/list.go
package video

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/prompt"
	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client/view"
	"vidshare/internal/domain/video"
)

var (
	listFormat string
	listCached bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список видео",
	Long: `Просмотр списка всех видео на сервере.

Если сервер недоступен, показывается последний успешно полученный список.
С флагом --cached сервер не запрашивается.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		deps, err := types.Authenticated(cmd.Context())
		if err != nil {
			return err
		}

		format := listFormat
		if deps.JSON {
			format = "json"
		}
		out := cmd.OutOrStdout()

		if listCached {
			return printCached(cmd, deps, format)
		}

		lv := newListView(cmd, deps)
		if err := lv.Refresh(cmd.Context()); err != nil {
			prompt.Warn(cmd.ErrOrStderr(), fmt.Sprintf("не удалось получить список видео: %v", err))
			return printCached(cmd, deps, format)
		}

		return printVideos(out, lv.Videos(), format)
	},
}

func printCached(cmd *cobra.Command, deps *types.Deps, format string) error {
	videos, fetchedAt, err := deps.App.CachedVideos()
	if err != nil {
		return fmt.Errorf("ошибка чтения кэша: %w", err)
	}
	if fetchedAt.IsZero() {
		return fmt.Errorf("список видео еще не загружался")
	}

	if format != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Список из кэша от %s\n", fetchedAt.Format(time.DateTime))
	}
	return printVideos(cmd.OutOrStdout(), videos, format)
}

func printVideos(out io.Writer, videos []video.Video, format string) error {
	switch format {
	case "json":
		return printVideosJSON(out, videos)
	case "table":
		return printVideosTable(out, videos)
	default:
		return printVideosSimple(out, videos)
	}
}

func printVideosSimple(out io.Writer, videos []video.Video) error {
	if len(videos) == 0 {
		fmt.Fprintln(out, view.MsgNoVideos)
		return nil
	}

	fmt.Fprintf(out, "Найдено видео: %d\n\n", len(videos))

	for i, v := range videos {
		fmt.Fprintf(out, "%d. %s\n", i+1, v.Title)
		fmt.Fprintf(out, "   ID: %s | Автор: %s | Просмотров: %d\n", v.ID, v.Uploader, v.Views)
		if v.Description != "" {
			fmt.Fprintf(out, "   %s\n", v.Description)
		}
		fmt.Fprintln(out)
	}

	return nil
}

func printVideosTable(out io.Writer, videos []video.Video) error {
	if len(videos) == 0 {
		fmt.Fprintln(out, view.MsgNoVideos)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tНазвание\tАвтор\tПросмотры\tФайл\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")

	for _, v := range videos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t\n",
			v.ID,
			truncate(v.Title, 30),
			v.Uploader,
			v.Views,
			v.FilePath,
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nВсего видео: %d\n", len(videos))
	return nil
}

func printVideosJSON(out io.Writer, videos []video.Video) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(videos)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")
	ListCmd.Flags().BoolVar(&listCached, "cached", false, "показать список из локального кэша")
}
