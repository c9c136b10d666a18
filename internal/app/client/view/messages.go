package view

import (
	"errors"
	"fmt"

	"vidshare/internal/app/client"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
)

const (
	MsgLoading       = "Загрузка..."
	MsgNoVideos      = "Видео пока нет"
	MsgConfirmDelete = "Вы уверены, что хотите удалить это видео?"

	MsgRegisterSuccess   = "Регистрация прошла успешно! Войдите в свой аккаунт"
	MsgRegisterFailed    = "Регистрация не удалась, попробуйте еще раз"
	MsgRegisterTransport = "Произошла ошибка при регистрации"
	MsgPasswordMismatch  = "Пароли не совпадают"
	MsgRequiredFields    = "Заполните все обязательные поля"

	MsgLoginFailed    = "Не удалось войти, проверьте email и пароль"
	MsgLoginTransport = "Произошла ошибка при входе"
	MsgNoAccessToken  = "Сервер не вернул токен доступа"
	MsgTokenSave      = "Не удалось сохранить токен"

	MsgUploadRequired    = "Выберите файл и введите название"
	MsgUploadUnsupported = "Неподдерживаемый формат видео. Разрешены MP4, WebM, Ogg и QuickTime"
	MsgUploadFailed      = "Загрузка не удалась"
	MsgUploadTransport   = "Произошла ошибка при загрузке"

	msgDeleteFailed    = "Удаление не удалось: "
	msgDeleteTransport = "Произошла ошибка при удалении: "
)

// validationMessage текст для локальной ошибки формы
func validationMessage(err error) string {
	switch {
	case errors.Is(err, user.ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, video.ErrUnsupportedMediaType):
		return MsgUploadUnsupported
	case errors.Is(err, video.ErrMissingTitle), errors.Is(err, video.ErrMissingFile):
		return MsgUploadRequired
	default:
		return MsgRequiredFields
	}
}

// registerFailure сообщение по цепочке: JSON message, текст ответа, статус
func registerFailure(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		return apiErr.Describe(MsgRegisterFailed)
	}
	return MsgRegisterTransport
}

// loginFailure общее сообщение; сообщение сервера добавляется, если оно есть
func loginFailure(err error) string {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return MsgLoginTransport
	}

	switch {
	case apiErr.ReadErr != nil:
		return fmt.Sprintf("%s (%d: %s)", MsgLoginFailed, apiErr.StatusCode, apiErr.StatusText)
	case apiErr.Message != "":
		return MsgLoginFailed + ": " + apiErr.Message
	case apiErr.Text != "":
		return MsgLoginFailed + ": " + apiErr.Text
	default:
		return MsgLoginFailed
	}
}

func uploadFailure(err error) string {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return MsgUploadTransport
	}
	if apiErr.JSON && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgUploadFailed
}

func deleteFailure(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		return msgDeleteFailed + apiErr.DetailOrStatus()
	}
	return msgDeleteTransport + err.Error()
}
