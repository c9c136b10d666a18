package view

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"vidshare/internal/domain/video"
)

// UploadView форма загрузки видео
type UploadView struct {
	notifier

	api       API
	log       *slog.Logger
	strict    bool
	onSuccess func(ctx context.Context)

	mu        sync.Mutex
	title     string
	file      *video.UploadFile
	status    Status
	uploading bool
}

// NewUploadView создает форму; onSuccess вызывается после успешной загрузки
func NewUploadView(api API, log *slog.Logger, onSuccess func(ctx context.Context), opts ...Option) *UploadView {
	o := newOptions(opts)
	if onSuccess == nil {
		onSuccess = func(context.Context) {}
	}
	return &UploadView{
		api:       api,
		log:       log.With(slog.String("component", "upload_view")),
		strict:    o.strictMediaTypes,
		onSuccess: onSuccess,
	}
}

func (v *UploadView) SetTitle(title string) {
	v.mu.Lock()
	v.title = title
	v.mu.Unlock()
	v.notify()
}

func (v *UploadView) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

// SelectFile выбирает файл с диска
func (v *UploadView) SelectFile(path string) error {
	f, err := video.NewUploadFile(path)
	if err != nil {
		return err
	}
	return v.SetFile(f)
}

// SetFile выбирает файл. В строгом режиме файл неразрешенного типа
// запоминается, но форма сообщает об ошибке и не дает отправить его.
func (v *UploadView) SetFile(f *video.UploadFile) error {
	var err error

	v.mu.Lock()
	v.file = f
	v.status = Status{}
	if v.strict && f != nil {
		if err = video.MediaType(f.ContentType).Validate(); err != nil {
			v.status = Status{Message: MsgUploadUnsupported, Error: true}
		}
	}
	v.mu.Unlock()

	v.notify()
	return err
}

func (v *UploadView) File() *video.UploadFile {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.file
}

func (v *UploadView) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *UploadView) Uploading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.uploading
}

func (v *UploadView) Strict() bool {
	return v.strict
}

// CanSubmit false во время загрузки, а в строгом режиме еще и без
// выбранного файла разрешенного типа
func (v *UploadView) CanSubmit() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.uploading {
		return false
	}
	if v.strict {
		return v.file != nil && video.IsAllowed(v.file.ContentType)
	}
	return true
}

// Reset очищает форму
func (v *UploadView) Reset() {
	v.mu.Lock()
	v.title = ""
	v.file = nil
	v.status = Status{}
	v.mu.Unlock()
	v.notify()
}

// Submit отправляет файл. Флаг загрузки сбрасывается при любом исходе.
func (v *UploadView) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.uploading {
		v.mu.Unlock()
		return ErrBusy
	}

	req := video.UploadRequest{Title: v.title, File: v.file}
	if err := video.ValidateUpload(req, v.strict); err != nil {
		v.status = Status{Message: validationMessage(err), Error: true}
		v.mu.Unlock()
		v.notify()
		return err
	}

	v.uploading = true
	v.status = Status{}
	v.mu.Unlock()
	v.notify()

	_, err := v.api.UploadVideo(ctx, req)

	v.mu.Lock()
	v.uploading = false
	if err != nil {
		v.status = Status{Message: uploadFailure(err), Error: true}
		v.mu.Unlock()
		v.log.Error("Ошибка загрузки видео", "error", err)
		v.notify()
		return err
	}
	v.title = ""
	v.file = nil
	v.mu.Unlock()
	v.notify()

	v.onSuccess(ctx)
	return nil
}
