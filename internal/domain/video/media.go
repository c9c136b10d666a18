package video

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type MediaType string

const (
	MediaMP4       MediaType = "video/mp4"
	MediaWebM      MediaType = "video/webm"
	MediaOgg       MediaType = "video/ogg"
	MediaQuickTime MediaType = "video/quicktime"
)

// AllowedMediaTypes список типов, которые принимает форма загрузки
var AllowedMediaTypes = []MediaType{MediaMP4, MediaWebM, MediaOgg, MediaQuickTime}

// videoExtensions объявленные типы по расширению, как их выставляет браузер
var videoExtensions = map[string]MediaType{
	".mp4":  MediaMP4,
	".m4v":  MediaMP4,
	".webm": MediaWebM,
	".ogv":  MediaOgg,
	".ogg":  MediaOgg,
	".mov":  MediaQuickTime,
	".qt":   MediaQuickTime,
}

// String возвращает строковое представление типа.
func (t MediaType) String() string {
	return string(t)
}

// Validate проверяет, что тип входит в список разрешенных
func (t MediaType) Validate() error {
	if IsAllowed(string(t)) {
		return nil
	}
	if t == "" {
		return fmt.Errorf("%w: unknown", ErrUnsupportedMediaType)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, string(t))
}

// IsAllowed сообщает, разрешен ли объявленный тип contentType.
// Параметры вида "; codecs=..." игнорируются.
func IsAllowed(contentType string) bool {
	base := normalize(contentType)
	for _, allowed := range AllowedMediaTypes {
		if base == string(allowed) {
			return true
		}
	}
	return false
}

func normalize(contentType string) string {
	if contentType == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return base
}

// DetectMediaType определяет объявленный тип файла: сначала по расширению,
// затем по содержимому (если передан r).
func DetectMediaType(name string, r io.Reader) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := videoExtensions[ext]; ok {
		return string(t)
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return normalize(t)
	}
	if r == nil {
		return ""
	}

	m, err := mimetype.DetectReader(r)
	if err != nil {
		return ""
	}
	return normalize(m.String())
}

// UploadFile выбранный для загрузки файл
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	open        func() (io.ReadCloser, error)
}

// NewUploadFile готовит файл с диска к загрузке
func NewUploadFile(path string) (*UploadFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: это директория", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	contentType := DetectMediaType(info.Name(), f)
	_ = f.Close()

	return &UploadFile{
		Name:        info.Name(),
		ContentType: contentType,
		Size:        info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// NewUploadFileFromBytes готовит к загрузке данные из памяти.
// Пустой contentType определяется так же, как для файлов с диска.
func NewUploadFileFromBytes(name, contentType string, data []byte) *UploadFile {
	if contentType == "" {
		contentType = DetectMediaType(name, bytes.NewReader(data))
	}
	return &UploadFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Open открывает содержимое файла для чтения
func (f *UploadFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, ErrMissingFile
	}
	return f.open()
}

// ValidateUpload проверяет форму загрузки без обращения к сети.
// strict включает проверку объявленного типа по списку разрешенных.
func ValidateUpload(req UploadRequest, strict bool) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrMissingTitle
	}
	if req.File == nil {
		return ErrMissingFile
	}
	if strict {
		if err := MediaType(req.File.ContentType).Validate(); err != nil {
			return err
		}
	}
	return nil
}
