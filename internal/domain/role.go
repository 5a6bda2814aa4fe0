package domain

// Role represents the single role assigned to a user.
// The numeric values match the roles catalog table.
type Role int

const (
	RoleAdmin       Role = 1
	RoleCoordinator Role = 2
	RoleTechnician  Role = 3
	RoleViewer      Role = 4
)

// String returns the catalog name of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleCoordinator:
		return "Coordinator"
	case RoleTechnician:
		return "Technician"
	case RoleViewer:
		return "Viewer"
	}
	return "Unknown"
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleTechnician, RoleViewer:
		return true
	}
	return false
}

// Capability is a lifecycle action a role may or may not perform.
// The role check is orthogonal to the status state machine: a role can hold
// a capability and still be denied by an illegal transition.
type Capability int

const (
	// CapCreateCase allows creating case files and attaching child records
	// (evidence, trace evidence, participants, attachments).
	CapCreateCase Capability = iota
	// CapEditCase allows editing Draft/Rejected case files. Technicians are
	// further restricted to case files they registered themselves; that
	// ownership check lives in the service layer.
	CapEditCase
	// CapSubmitCase allows sending a Draft case file for review.
	CapSubmitCase
	// CapReviewCase allows approving or rejecting a case file under review.
	CapReviewCase
	// CapManageUsers allows creating, updating, and deactivating users.
	CapManageUsers
)

// capabilities is the fixed role → capability table (one row per role).
var capabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapCreateCase:  true,
		CapEditCase:    true,
		CapSubmitCase:  true,
		CapReviewCase:  true,
		CapManageUsers: true,
	},
	RoleCoordinator: {
		CapCreateCase: true,
		CapEditCase:   true,
		CapSubmitCase: true,
		CapReviewCase: true,
	},
	RoleTechnician: {
		CapCreateCase: true,
		CapEditCase:   true,
		CapSubmitCase: true,
	},
	RoleViewer: {},
}

// Can reports whether the role holds the given capability.
// Unknown roles hold nothing.
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// EditsOwnOnly reports whether the role may edit only case files it
// registered itself.
func (r Role) EditsOwnOnly() bool {
	return r == RoleTechnician
}
