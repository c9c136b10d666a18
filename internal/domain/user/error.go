package user

import "errors"

var (
	ErrMissingField     = errors.New("required field is empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoAccessToken    = errors.New("no access token in login response")
)

// FieldError ошибка проверки конкретного поля формы
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missingField(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}
