package model

import "time"

type Role string

const (
	RoleStudent     Role = "student"
	RoleTutor       Role = "tutor"
	RoleCoordinator Role = "coordinator"
	RoleChair       Role = "chair"
	RoleAdmin       Role = "admin"
)

// Valid проверяет что роль из закрытого набора
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleCoordinator, RoleChair, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	LanguageCode string    `json:"language_code"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsTutor может ли пользователь вести своё расписание
func (u *User) IsTutor() bool {
	return u.Role == RoleTutor
}

// DisplayName имя для сообщений
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if name == "" && u.Username != "" {
		name = "@" + u.Username
	}
	return name
}
