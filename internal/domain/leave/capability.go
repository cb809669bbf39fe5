package leave

import "github.com/peopledesk/hr-backend-go/internal/domain/employee"

// Capabilities is the explicit authority set a caller brings into the
// workflow. It is derived once at the request boundary and passed down, so
// the engine never consults session state.
type Capabilities struct {
	CanApprove  bool
	CanBackdate bool
}

// CapabilitiesFor derives the capability set from an employee role.
func CapabilitiesFor(role employee.Role) Capabilities {
	if role.IsApprover() {
		return Capabilities{CanApprove: true, CanBackdate: true}
	}
	return Capabilities{}
}
