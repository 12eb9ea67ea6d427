package constants

import "fmt"

const (
	RoleDonor      = "donor"
	RoleNeedy      = "needy"
	RoleVolunteer  = "volunteer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess     = "Only admins can access %s."
	ErrOnlyVolunteersCanAccess = "Only volunteers can access %s."
	ErrOnlyDonorsCanAccess     = "Only donors can access %s."
	ErrOnlySuperAdminCanAccess = "Only the superadmin can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorVolunteer(feature string) string {
	return fmt.Sprintf(ErrOnlyVolunteersCanAccess, feature)
}

func RoleErrorDonor(feature string) string {
	return fmt.Sprintf(ErrOnlyDonorsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleDonor,
		RoleNeedy,
		RoleVolunteer,
		RoleAdmin,
		RoleSuperAdmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleSuperAdmin,
	}

	VolunteerOnly = []string{
		RoleVolunteer,
	}

	DonorOnly = []string{
		RoleDonor,
	}

	NeedyOnly = []string{
		RoleNeedy,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// UserModelForRole maps a token role to the owner kind stored on notifications.
func UserModelForRole(role string) string {
	if IsAdminRole(role) {
		return RoleAdmin
	}
	return role
}
