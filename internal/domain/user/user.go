package user

import "strings"

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleCompany:
		return RoleCompany, true
	default:
		return "", false
	}
}
