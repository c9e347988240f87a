package constants

import "fmt"

// Role user di portal
const (
	RoleTrainee = "trainee"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// Template pesan error role
const (
	ErrOnlyStaffCanAccess  = "❌ Hanya trainer atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleTrainee,
		RoleTrainer,
		RoleAdmin,
	}

	StaffRoles = []string{
		RoleTrainer,
		RoleAdmin,
	}
)
