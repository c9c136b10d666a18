package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vidshare/internal/app/client/config"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
)

const userAgent = "vidshare-client/1.0"

// tokenSource отдает текущий токен доступа
type tokenSource interface {
	Token() string
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	tokens    tokenSource
	userAgent string
}

func NewHTTPClient(cfg *config.Config, tokens tokenSource, log *slog.Logger) (*httpClient, error) {
	base, err := url.Parse(cfg.APIURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("некорректный адрес API: %q", cfg.APIURL)
	}

	// Таймаут 0 означает отсутствие ограничения
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   strings.TrimRight(cfg.APIURL, "/"),
		tokens:    tokens,
		userAgent: userAgent,
	}, nil
}

// Register регистрирует пользователя
func (h *httpClient) Register(ctx context.Context, req user.RegisterRequest) (*user.RegisterResponse, error) {
	resp, err := h.doJSON(ctx, http.MethodPost, "/api/register", req, false)
	if err != nil {
		return nil, err
	}

	body, err := h.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	var out user.RegisterResponse
	if err := json.Unmarshal(body, &out); err != nil {
		h.log.Debug("Ответ регистрации не JSON", "error", err)
	}
	return &out, nil
}

// Login выполняет вход и возвращает ответ сервера как есть
func (h *httpClient) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	resp, err := h.doJSON(ctx, http.MethodPost, "/api/login", req, false)
	if err != nil {
		return nil, err
	}

	body, err := h.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	var out user.LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("ошибка парсинга ответа: %w", err)
	}
	return &out, nil
}

// ListVideos получает все видео
func (h *httpClient) ListVideos(ctx context.Context) ([]video.Video, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/videos", nil, "", true)
	if err != nil {
		return nil, err
	}

	body, err := h.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	var videos []video.Video
	if err := json.Unmarshal(body, &videos); err != nil {
		return nil, fmt.Errorf("ошибка парсинга списка видео: %w", err)
	}
	if videos == nil {
		videos = []video.Video{}
	}
	return videos, nil
}

// UploadVideo отправляет multipart-запрос с полями title и file
func (h *httpClient) UploadVideo(ctx context.Context, req video.UploadRequest) (*video.UploadResponse, error) {
	if req.File == nil {
		return nil, video.ErrMissingFile
	}

	src, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer src.Close()
		pw.CloseWithError(writeUploadForm(mw, req.Title, req.File, src))
	}()

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/videos", pr, mw.FormDataContentType(), true)
	if err != nil {
		_ = pr.CloseWithError(err)
		return nil, err
	}

	body, err := h.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	var out video.UploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		h.log.Debug("Ответ загрузки не JSON", "error", err)
	}
	return &out, nil
}

func writeUploadForm(mw *multipart.Writer, title string, file *video.UploadFile, src io.Reader) error {
	if err := mw.WriteField("title", title); err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fileDisposition("file", file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}

	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// fileDisposition заголовок файловой части формы, как у multipart.CreateFormFile
func fileDisposition(field, fileName string) string {
	return fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(fileName))
}

// RecordView увеличивает счетчик просмотров
func (h *httpClient) RecordView(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/videos/"+url.PathEscape(id)+"/view", nil, "", true)
	if err != nil {
		return err
	}

	_, err = h.parseResponse(resp)
	return err
}

// DeleteVideo удаляет видео
func (h *httpClient) DeleteVideo(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/videos/"+url.PathEscape(id), nil, "", true)
	if err != nil {
		return err
	}

	_, err = h.parseResponse(resp)
	return err
}

// MediaURL адрес потока видео для воспроизведения
func (h *httpClient) MediaURL(filePath string) string {
	return h.baseURL + "/uploads/" + url.PathEscape(filePath)
}

// Download копирует поток видео в w
func (h *httpClient) Download(ctx context.Context, filePath string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.MediaURL(filePath), nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	h.setCommonHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, readErr := io.ReadAll(resp.Body)
		return 0, newAPIError(resp, body, readErr)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("ошибка загрузки потока: %w", err)
	}
	return n, nil
}

func (h *httpClient) doJSON(ctx context.Context, method, path string, body any, auth bool) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
	}
	return h.doRequest(ctx, method, path, bytes.NewReader(jsonData), "application/json", auth)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	h.setCommonHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if token := h.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
		"request_id", req.Header.Get("X-Request-ID"),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return resp, nil
}

func (h *httpClient) setCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// parseResponse читает тело ответа; статус >= 400 превращается в *APIError
func (h *httpClient) parseResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp, body, err)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	return body, nil
}
