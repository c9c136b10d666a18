package video

import (
	"github.com/spf13/cobra"

	"vidshare/cmd/client/cmd/prompt"
	"vidshare/cmd/client/cmd/types"
	"vidshare/internal/app/client/view"
)

// VideoCmd - родительская команда для всех операций с видео
var VideoCmd = &cobra.Command{
	Use:     "video",
	Aliases: []string{"videos", "v"},
	Short:   "Управление видео",
	Long:    `Просмотр списка, загрузка, воспроизведение, скачивание и удаление видео.`,
}

// newListView собирает представление списка для команды
func newListView(cmd *cobra.Command, deps *types.Deps, opts ...view.Option) *view.ListView {
	gate := view.NewGate(deps.App.Session(), deps.Log)

	base := append(deps.ViewOptions(),
		view.WithConfirmer(view.ConfirmFunc(deps.Prompt.Confirm)),
		view.WithAlerter(view.AlertFunc(func(message string) {
			prompt.Alert(cmd.ErrOrStderr(), message)
		})),
	)
	return view.NewListView(deps.App, gate, deps.Log, append(base, opts...)...)
}
