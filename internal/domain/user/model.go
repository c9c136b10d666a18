package user

// RegisterForm состояние формы регистрации
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Request формирует запрос регистрации из формы
func (f RegisterForm) Request() RegisterRequest {
	return RegisterRequest{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	}
}

// Credentials состояние формы входа
type Credentials struct {
	Email    string
	Password string
}

// Request формирует запрос входа
func (c Credentials) Request() LoginRequest {
	return LoginRequest{Email: c.Email, Password: c.Password}
}
