package user

import "strings"

// Validator - интерфейс для клиентской валидации форм
type Validator interface {
	ValidateRegister(form RegisterForm) error
	ValidateLogin(creds Credentials) error
}

// FormValidator проверяет формы до отправки на сервер.
// Проверки повторяют атрибуты required у полей формы и совпадение паролей.
type FormValidator struct{}

func NewFormValidator() *FormValidator {
	return &FormValidator{}
}

// ValidateRegister валидирует данные для регистрации
func (v *FormValidator) ValidateRegister(form RegisterForm) error {
	required := []struct {
		name  string
		value string
	}{
		{"username", form.Username},
		{"email", form.Email},
		{"password", form.Password},
		{"confirm_password", form.ConfirmPassword},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return missingField(f.name)
		}
	}

	if form.Password != form.ConfirmPassword {
		return ErrPasswordMismatch
	}

	return nil
}

// ValidateLogin валидирует данные для входа
func (v *FormValidator) ValidateLogin(creds Credentials) error {
	if strings.TrimSpace(creds.Email) == "" {
		return missingField("email")
	}
	if creds.Password == "" {
		return missingField("password")
	}
	return nil
}
