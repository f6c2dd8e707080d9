package user

type Permission string

const (
	// Leave Management
	PermissionLeaveViewOwn     Permission = "leave.view_own"
	PermissionLeaveCreate      Permission = "leave.create"
	PermissionLeaveReview      Permission = "leave.review"
	PermissionLeaveViewAll     Permission = "leave.view_all"
	PermissionLeaveManageTypes Permission = "leave.manage_types"
	PermissionBalanceViewAll   Permission = "balance.view_all"

	// Calendar
	PermissionCalendarManage Permission = "calendar.manage"

	// Delegation
	PermissionDelegationManage Permission = "delegation.manage"

	// Organisation
	PermissionOrganisationManage Permission = "organisation.manage"

	// User Management
	PermissionUserViewAll Permission = "user.view_all"
	PermissionUserManage  Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveReview,
		PermissionLeaveViewAll,
		PermissionLeaveManageTypes,
		PermissionBalanceViewAll,
		PermissionCalendarManage,
		PermissionDelegationManage,
		PermissionOrganisationManage,
		PermissionUserViewAll,
		PermissionUserManage,
	},
	RoleHR: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionBalanceViewAll,
		PermissionCalendarManage,
		PermissionUserViewAll,
	},
	RoleManager: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveReview,
		PermissionDelegationManage,
		PermissionUserViewAll,
	},
	RoleEmployee: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
