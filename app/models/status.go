package models

// Status is the lifecycle state of an order. Transitions form a directed
// acyclic graph:
//
//	pending ──> confirmed ──> preparing ──> completed ──> delivered
//	   │
//	   └──────> rejected
//
// rejected and delivered are terminal. A status is only ever changed through
// the order service, which validates the edge against the persisted status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusDelivered Status = "delivered"
)

// Role is a staff role. Roles gate both page access and status transitions.
type Role string

const (
	RoleWaiter  Role = "waiter"
	RoleCounter Role = "counter"
	RoleKitchen Role = "kitchen"
)

// IsValid reports whether r is a known staff role.
func (r Role) IsValid() bool {
	return r == RoleWaiter || r == RoleCounter || r == RoleKitchen
}

// transitions is the full edge set of the status graph.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusPreparing},
	StatusPreparing: {StatusCompleted},
	StatusCompleted: {StatusDelivered},
	StatusRejected:  {},
	StatusDelivered: {},
}

// edge is one directed transition of the status graph.
type edge struct{ from, to Status }

// edgeRoles maps each legal edge to the roles allowed to trigger it.
// Authorization is data, enforced server-side; it is never inferred from
// which screen happens to render a button.
var edgeRoles = map[edge][]Role{
	{StatusPending, StatusConfirmed}:   {RoleCounter},
	{StatusPending, StatusRejected}:    {RoleCounter},
	{StatusConfirmed, StatusPreparing}: {RoleKitchen},
	{StatusPreparing, StatusCompleted}: {RoleKitchen},
	{StatusCompleted, StatusDelivered}: {RoleCounter, RoleWaiter},
}

// IsValid reports whether s is a known status value.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no transitions lead out of s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the edge s -> target exists.
// A no-op "transition" to the current status is not an edge.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// RolesFor returns the roles permitted to trigger the edge s -> target,
// or nil when the edge does not exist.
func (s Status) RolesFor(target Status) []Role {
	return edgeRoles[edge{s, target}]
}

// RoleMayTransition reports whether role is allowed to move an order
// from s to target. False when the edge itself is illegal.
func (s Status) RoleMayTransition(target Status, role Role) bool {
	for _, allowed := range s.RolesFor(target) {
		if allowed == role {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }
