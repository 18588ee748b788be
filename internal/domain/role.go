package domain

import (
	"fmt"
	"strings"
)

// Role classifies a participant. The set is closed: there is no admin or
// super-role, and no role outside this set is ever granted an operation.
type Role string

const (
	RoleMember Role = "member"
	RoleLead   Role = "lead"
)

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleMember:
		return RoleMember, nil
	case RoleLead:
		return RoleLead, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleLead
}

// Operation identifies an action a role may perform. The vocabulary is closed;
// raw strings are converted through ParseOperation at the boundary.
type Operation string

const (
	OpSubmitAction       Operation = "submit_action"
	OpViewActivities     Operation = "view_activities"
	OpViewLeaderboard    Operation = "view_leaderboard"
	OpViewProfile        Operation = "view_profile"
	OpCreateActivity     Operation = "create_activity"
	OpManageActivity     Operation = "manage_activity"
	OpDeactivateActivity Operation = "deactivate_activity"
	OpValidateProof      Operation = "validate_proof"
)

// memberOperations is the full grant for RoleMember.
var memberOperations = map[Operation]struct{}{
	OpSubmitAction:    {},
	OpViewActivities:  {},
	OpViewLeaderboard: {},
	OpViewProfile:     {},
}

// leadOperations is a strict superset of memberOperations.
var leadOperations = map[Operation]struct{}{
	OpSubmitAction:       {},
	OpViewActivities:     {},
	OpViewLeaderboard:    {},
	OpViewProfile:        {},
	OpCreateActivity:     {},
	OpManageActivity:     {},
	OpDeactivateActivity: {},
	OpValidateProof:      {},
}

// ParseOperation converts a raw string into an Operation. Matching is
// case-insensitive; blank input is rejected.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if op == "" {
		return "", fmt.Errorf("operation cannot be empty")
	}
	if _, ok := leadOperations[op]; !ok {
		return "", fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}

// Permits reports whether the role's static grant includes op.
// The zero Operation is never permitted.
func (r Role) Permits(op Operation) bool {
	switch r {
	case RoleLead:
		_, ok := leadOperations[op]
		return ok
	case RoleMember:
		_, ok := memberOperations[op]
		return ok
	default:
		return false
	}
}

// Operations returns the role's grant set. The slice is a copy.
func (r Role) Operations() []Operation {
	var set map[Operation]struct{}
	switch r {
	case RoleLead:
		set = leadOperations
	case RoleMember:
		set = memberOperations
	default:
		return nil
	}

	ops := make([]Operation, 0, len(set))
	for op := range set {
		ops = append(ops, op)
	}
	return ops
}
