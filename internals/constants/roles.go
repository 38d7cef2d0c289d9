package constants

import "fmt"

const (
	RoleAdmin      = "admin"
	RoleTranslator = "translator"
	RoleEditor     = "editor"
	RoleReviewer   = "reviewer"
	RoleAssigner   = "assigner"
	RoleUploader   = "uploader"
)

// Template pesan error role
const (
	ErrOnlyManagersCanAccess  = "❌ Hanya admin, assigner, atau uploader yang boleh mengakses fitur %s."
	ErrOnlyReviewersCanAccess = "❌ Hanya admin, reviewer, atau editor yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyCreatorsCanAccess  = "❌ Hanya admin atau uploader yang boleh mengakses fitur %s."
	ErrOnlyAssignersCanAccess = "❌ Hanya admin atau assigner yang boleh mengakses fitur %s."
)

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorReviewer(feature string) string {
	return fmt.Sprintf(ErrOnlyReviewersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorCreator(feature string) string {
	return fmt.Sprintf(ErrOnlyCreatorsCanAccess, feature)
}

func RoleErrorAssigner(feature string) string {
	return fmt.Sprintf(ErrOnlyAssignersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTranslator,
		RoleEditor,
		RoleReviewer,
		RoleAssigner,
		RoleUploader,
	}

	ManagerRoles = []string{
		RoleAdmin,
		RoleAssigner,
		RoleUploader,
	}

	AssignerRoles = []string{
		RoleAdmin,
		RoleAssigner,
	}

	WorkerCreatorRoles = []string{
		RoleAdmin,
		RoleUploader,
	}

	ReviewerRoles = []string{
		RoleAdmin,
		RoleReviewer,
		RoleEditor,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
