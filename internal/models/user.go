package models

// Role — закрытое перечисление ролей. В старой базе роль лежала как
// произвольная строка; теперь любая другая строка отбрасывается на гейте.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCurator Role = "curator"
	RolePress   Role = "press" // роль по умолчанию
)

// Valid сообщает, входит ли роль в перечисление.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCurator, RolePress:
		return true
	}
	return false
}

// User — запись из таблицы users. Пароль храним только как bcrypt-хэш.
// Пользователи заводятся вне сайта (нет маршрута регистрации).
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
