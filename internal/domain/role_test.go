package domain

import "testing"

func TestRole_Capabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role    Role
		create  bool
		edit    bool
		submit  bool
		review  bool
		manage  bool
		ownOnly bool
	}{
		{RoleAdmin, true, true, true, true, true, false},
		{RoleCoordinator, true, true, true, true, false, false},
		{RoleTechnician, true, true, true, false, false, true},
		{RoleViewer, false, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.role.Can(CapCreateCase); got != tt.create {
				t.Errorf("CapCreateCase: got %v, want %v", got, tt.create)
			}
			if got := tt.role.Can(CapEditCase); got != tt.edit {
				t.Errorf("CapEditCase: got %v, want %v", got, tt.edit)
			}
			if got := tt.role.Can(CapSubmitCase); got != tt.submit {
				t.Errorf("CapSubmitCase: got %v, want %v", got, tt.submit)
			}
			if got := tt.role.Can(CapReviewCase); got != tt.review {
				t.Errorf("CapReviewCase: got %v, want %v", got, tt.review)
			}
			if got := tt.role.Can(CapManageUsers); got != tt.manage {
				t.Errorf("CapManageUsers: got %v, want %v", got, tt.manage)
			}
			if got := tt.role.EditsOwnOnly(); got != tt.ownOnly {
				t.Errorf("EditsOwnOnly: got %v, want %v", got, tt.ownOnly)
			}
		})
	}
}

func TestRole_UnknownHoldsNothing(t *testing.T) {
	t.Parallel()

	r := Role(42)
	if r.IsValid() {
		t.Error("role 42 should be invalid")
	}
	if r.Can(CapCreateCase) || r.Can(CapReviewCase) || r.Can(CapManageUsers) {
		t.Error("unknown role must hold no capabilities")
	}
}
