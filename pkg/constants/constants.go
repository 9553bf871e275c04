package constants

// Роли пользователей системы.
const (
	RoleAdmin     = "admin"
	RoleCustodian = "custodian"
	RoleUser      = "user"
)

// Состояния оборудования и его единиц.
const (
	ConditionNew     = "New"
	ConditionUsed    = "Used"
	ConditionDamaged = "Damaged"
)

func IsValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionDamaged:
		return true
	}
	return false
}

func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleCustodian, RoleUser:
		return true
	}
	return false
}
