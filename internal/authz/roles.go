package authz

import "academy-manager/pkg/types"

var staffPermissions = []string{
	PasswordUpdate,
	StudentsView, StudentsManage,
	DevicesView, DevicesManage,
	LoansView, LoansManage,
	BooksView,
	BookLoansView, BookLoansManage,
	DeviceTypesView,
	EventsView, EventsManage,
	DashboardView,
	ExportBasic,
}

// rolePermissions é fixo: o sistema tem só três papéis.
var rolePermissions = map[string]map[string]bool{
	types.RoleAdmin:     toSet(Superuser),
	types.RoleProfessor: toSet(staffPermissions...),
	types.RoleUser:      toSet(staffPermissions...),
}

func toSet(perms ...string) map[string]bool {
	set := make(map[string]bool, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}

// PermissionsFor devolve o mapa de permissões do papel (nil para papel desconhecido).
func PermissionsFor(role string) map[string]bool {
	return rolePermissions[role]
}

// Can responde se o papel possui a permissão.
func Can(role, permission string) bool {
	perms := rolePermissions[role]
	if perms == nil {
		return false
	}
	return perms[Superuser] || perms[permission]
}
