package userservice

// User профиль пользователя из UserService (клиент или провайдер)
type User struct {
	ID               int64  `json:"id"`
	UserName         string `json:"user_name"`
	Email            string `json:"email"`
	PermanentAddress string `json:"permanent_address"`
	Number           string `json:"number"` // телефон
}
