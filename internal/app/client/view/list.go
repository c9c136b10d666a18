package view

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"vidshare/internal/domain/video"
)

// ListView список видео с формой загрузки
type ListView struct {
	notifier

	api           API
	gate          *Gate
	log           *slog.Logger
	confirmDelete bool
	confirmer     Confirmer
	alerter       Alerter
	upload        *UploadView

	mu         sync.Mutex
	videos     []video.Video
	loading    bool
	showUpload bool
}

func NewListView(api API, gate *Gate, log *slog.Logger, opts ...Option) *ListView {
	o := newOptions(opts)

	v := &ListView{
		api:           api,
		gate:          gate,
		log:           log.With(slog.String("component", "list_view")),
		confirmDelete: o.confirmDelete,
		confirmer:     o.confirmer,
		alerter:       o.alerter,
		videos:        []video.Video{},
		loading:       true,
	}
	v.upload = NewUploadView(api, log, v.uploadSucceeded, opts...)
	return v
}

// Refresh заново загружает весь список. Ошибка только логируется:
// предыдущий список остается на экране.
func (v *ListView) Refresh(ctx context.Context) error {
	videos, err := v.api.ListVideos(ctx)

	v.mu.Lock()
	if err == nil {
		if videos == nil {
			videos = []video.Video{}
		}
		v.videos = videos
	}
	v.loading = false
	v.mu.Unlock()

	if err != nil {
		v.log.Error("Ошибка получения списка видео", "error", err)
	}
	v.notify()
	return err
}

func (v *ListView) Videos() []video.Video {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]video.Video, len(v.videos))
	copy(out, v.videos)
	return out
}

func (v *ListView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Placeholder текст вместо списка; пустая строка, если список есть
func (v *ListView) Placeholder() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case v.loading:
		return MsgLoading
	case len(v.videos) == 0:
		return MsgNoVideos
	default:
		return ""
	}
}

// RecordView отмечает просмотр и всегда обновляет список после этого
func (v *ListView) RecordView(ctx context.Context, id string) error {
	viewErr := v.api.RecordView(ctx, id)
	if viewErr != nil {
		v.log.Error("Ошибка учета просмотра", "id", id, "error", viewErr)
	}

	refreshErr := v.Refresh(ctx)
	if viewErr != nil {
		return viewErr
	}
	return refreshErr
}

// Delete удаляет видео после подтверждения. Возвращает false, если
// пользователь отказался. Ошибки показываются через Alerter.
func (v *ListView) Delete(ctx context.Context, id string) (bool, error) {
	if v.confirmDelete && !v.confirmer.Confirm(MsgConfirmDelete) {
		return false, nil
	}

	if err := v.api.DeleteVideo(ctx, id); err != nil {
		v.log.Error("Ошибка удаления видео", "id", id, "error", err)
		v.alerter.Alert(deleteFailure(err))
		return true, err
	}

	_ = v.Refresh(ctx)
	return true, nil
}

// ToggleUpload показывает или скрывает форму загрузки
func (v *ListView) ToggleUpload() {
	v.mu.Lock()
	v.showUpload = !v.showUpload
	v.mu.Unlock()
	v.notify()
}

func (v *ListView) ShowingUpload() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.showUpload
}

func (v *ListView) Upload() *UploadView {
	return v.upload
}

func (v *ListView) Logout() error {
	return v.gate.Logout()
}

// MediaURL адрес для воспроизведения видео
func (v *ListView) MediaURL(vid video.Video) string {
	return v.api.MediaURL(vid.FilePath)
}

func (v *ListView) uploadSucceeded(ctx context.Context) {
	v.mu.Lock()
	v.showUpload = false
	v.mu.Unlock()

	_ = v.Refresh(ctx)
}
