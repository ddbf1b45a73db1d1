package authz

const (
	RoleDriver = 10
	RoleHost   = 20
	RoleAdmin  = 50
)

func IsHost(roleID int) bool {
	return roleID == RoleHost || roleID == RoleAdmin
}

func IsAdmin(roleID int) bool {
	return roleID == RoleAdmin
}
