package user

// RegisterRequest тело POST /api/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse ответ сервера на успешную регистрацию
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginRequest тело POST /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ответ сервера на успешный вход.
// AccessToken может отсутствовать, вызывающий код обязан это проверить.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
