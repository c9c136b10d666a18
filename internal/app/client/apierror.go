package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrTransport ошибка уровня сети: ответ от сервера не получен
var ErrTransport = errors.New("transport error")

// APIError ответ сервера с неуспешным статусом
type APIError struct {
	StatusCode int
	StatusText string

	// JSON true, если тело ответа - JSON-объект
	JSON    bool
	Message string
	Details string

	// Text тело ответа как есть, если это не JSON
	Text string

	// ReadErr ошибка чтения тела ответа
	ReadErr error
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
	Detail  string `json:"detail"`
}

func newAPIError(resp *http.Response, body []byte, readErr error) *APIError {
	e := &APIError{
		StatusCode: resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		ReadErr:    readErr,
	}
	if readErr != nil {
		return e
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.JSON = true
		e.Message = firstNonEmpty(eb.Message, eb.Error)
		e.Details = firstNonEmpty(eb.Details, eb.Detail)
		return e
	}

	e.Text = strings.TrimSpace(string(body))
	return e
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("ошибка сервера (%d): %s", e.StatusCode, e.Message)
	case e.Details != "":
		return fmt.Sprintf("ошибка сервера (%d): %s", e.StatusCode, e.Details)
	case e.Text != "":
		return fmt.Sprintf("ошибка сервера (%d): %s", e.StatusCode, e.Text)
	default:
		return fmt.Sprintf("ошибка сервера: статус %d", e.StatusCode)
	}
}

// Describe возвращает сообщение для пользователя по цепочке:
// JSON message -> текст ответа -> код и текст статуса.
// fallback используется, когда JSON или текст разобраны, но пусты.
func (e *APIError) Describe(fallback string) string {
	switch {
	case e.JSON:
		if e.Message != "" {
			return e.Message
		}
		return fallback
	case e.ReadErr == nil:
		if e.Text != "" {
			return e.Text
		}
		return fallback
	default:
		return fmt.Sprintf("%s (%d: %s)", fallback, e.StatusCode, e.StatusText)
	}
}

// DetailOrStatus возвращает поле details из JSON или текст статуса
func (e *APIError) DetailOrStatus() string {
	if e.Details != "" {
		return e.Details
	}
	return e.StatusText
}

// AsAPIError извлекает *APIError из цепочки ошибок
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransport сообщает, что ответ от сервера не был получен
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
