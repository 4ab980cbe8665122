package models

type Role string

const (
	RoleSuperadmin       Role = "superadmin"
	RoleFranchiseOwner   Role = "franchise_owner"
	RoleFranchiseManager Role = "franchise_manager"
	RoleGuest            Role = "guest"
)

// Actor is the caller on whose behalf a dashboard or menu operation runs.
// It is always passed explicitly; nothing reads the current user from globals.
type Actor struct {
	Role     Role   `json:"role"`
	TenantID string `json:"tenantId,omitempty"`
}

func (a Actor) IsOwner() bool {
	return a.Role == RoleFranchiseOwner
}

func (a Actor) IsManager() bool {
	return a.Role == RoleFranchiseManager
}
