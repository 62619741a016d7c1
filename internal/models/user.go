// Package models содержит доменные структуры пользователя,
// используемые в бизнес-логике, хранилище и HTTP-обработчиках.
package models

import "time"

// Роли пользователя. Роль определяет результат проверки авторизации:
// служебные конечные точки доступны только администраторам.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User представляет запись пользователя в хранилище.
// PasswordHash не сериализуется в JSON и не покидает слой хранилища.
type User struct {
	UID          string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"-"`
}

// AuthUser представляет разрешённую личность текущего запроса.
// Это подмножество полей User, достаточное для решений авторизации.
// Заполняется заново из хранилища на каждый запрос, а не из токена.
type AuthUser struct {
	UID   string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PublicView возвращает публичное представление пользователя для ответов API.
func (u *User) PublicView() AuthUser {
	return AuthUser{
		UID:   u.UID,
		Email: u.Email,
		Role:  u.Role,
	}
}
