package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"vidshare/internal/domain/video"
)

var _ list.Item = videoItem{}

// videoItem элемент списка для [video.Video]
type videoItem struct {
	video video.Video
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return i.video.Title }
func (i videoItem) Description() string {
	desc := fmt.Sprintf("%s • %d просмотров", i.video.Uploader, i.video.Views)
	if i.video.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.video.Description)
	}
	return desc
}

func videoItems(videos []video.Video) []list.Item {
	items := make([]list.Item, len(videos))
	for i, v := range videos {
		items[i] = videoItem{video: v}
	}
	return items
}
