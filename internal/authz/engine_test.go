package authz

import (
	"testing"

	"academy-manager/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestCan_RoleMatrix(t *testing.T) {
	testCases := []struct {
		role       string
		permission string
		expected   bool
	}{
		{types.RoleAdmin, UsersManage, true},
		{types.RoleAdmin, SystemBackup, true},
		{types.RoleProfessor, StudentsManage, true},
		{types.RoleProfessor, LoansManage, true},
		{types.RoleProfessor, BooksView, true},
		{types.RoleProfessor, BooksManage, false},
		{types.RoleUser, EquipmentManage, false},
		{types.RoleUser, InventoryView, false},
		{types.RoleUser, DevicesBulkDelete, false},
		{types.RoleUser, DeviceTypesView, true},
		{types.RoleUser, DeviceTypesManage, false},
		{types.RoleUser, SystemBackup, false},
		{"desconhecido", StudentsView, false},
	}

	for _, tc := range testCases {
		t.Run(tc.role+"/"+tc.permission, func(t *testing.T) {
			assert.Equal(t, tc.expected, Can(tc.role, tc.permission))
		})
	}
}

func TestCanDo_UserTarget(t *testing.T) {
	self := types.Principal{ID: 2, Username: "prof", Role: types.RoleProfessor}
	other := types.Principal{ID: 3, Username: "outro", Role: types.RoleUser}

	assert.True(t, CanDo(PasswordUpdate, Context{Actor: self, Target: &self}))
	assert.False(t, CanDo(PasswordUpdate, Context{Actor: self, Target: &other}))
	assert.False(t, CanDo(UsersManage, Context{Actor: self, Target: &self}))

	admin := types.Principal{ID: 1, Username: "admin", Role: types.RoleAdmin}
	assert.True(t, CanDo(UsersManage, Context{Actor: admin, Target: &other}))
}
