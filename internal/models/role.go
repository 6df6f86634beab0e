package models

import "strings"

// Role закрытый набор ролей пользователей
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDealer Role = "dealer"
	RoleUser   Role = "user"
)

// ParseRole приводит значение из базы к одной из известных ролей.
// Неизвестные значения считаются обычным пользователем.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDealer:
		return RoleDealer
	default:
		return RoleUser
	}
}
