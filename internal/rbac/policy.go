package rbac

// Capability grants one action on one resource to one role.
type Capability struct {
	Role     Role
	Resource string
	Action   string
}

// Resources and actions referenced by route registrations.
const (
	ResourceUser         = "user"
	ResourceAttendance   = "attendance"
	ResourceLeave        = "leave"
	ResourceHoliday      = "holiday"
	ResourceRating       = "rating"
	ResourceRemuneration = "remuneration"
	ResourceNotification = "notification"

	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionMark    = "mark"
	ActionReview  = "review"
)

// CapabilityTable is the single authoritative permission table. The API
// enforces it on every route; the frontend only mirrors it for UI hints.
var CapabilityTable = buildCapabilities()

func buildCapabilities() []Capability {
	allRoles := []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin, RoleCEO}
	reviewers := []Role{RoleManager, RoleHR, RoleAdmin, RoleCEO}
	hrAdmin := []Role{RoleHR, RoleAdmin}
	management := []Role{RoleHR, RoleAdmin, RoleCEO}

	var caps []Capability
	grant := func(roles []Role, resource string, actions ...string) {
		for _, role := range roles {
			for _, action := range actions {
				caps = append(caps, Capability{Role: role, Resource: resource, Action: action})
			}
		}
	}

	grant(allRoles, ResourceAttendance, ActionRead, ActionCreate)
	grant(reviewers, ResourceAttendance, ActionReadAll, ActionMark)

	grant(allRoles, ResourceLeave, ActionRead, ActionCreate)
	grant(reviewers, ResourceLeave, ActionReview)
	grant(management, ResourceLeave, ActionReadAll)

	grant(allRoles, ResourceUser, ActionRead)
	grant(reviewers, ResourceUser, ActionReadAll)
	grant(hrAdmin, ResourceUser, ActionCreate, ActionUpdate, ActionDelete)

	grant(allRoles, ResourceHoliday, ActionRead)
	grant(hrAdmin, ResourceHoliday, ActionCreate, ActionUpdate, ActionDelete)

	grant(allRoles, ResourceRating, ActionRead, ActionCreate)
	grant(management, ResourceRating, ActionReadAll)

	grant(management, ResourceRemuneration, ActionRead)

	grant(allRoles, ResourceNotification, ActionRead, ActionUpdate)

	return caps
}
