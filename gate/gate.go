// Package gate decides who may trigger an account lifecycle transition.
package gate

// Directory group names, in precedence order for authorization decisions.
const (
	GroupUser  = "user"
	GroupPaid  = "paid"
	GroupAdmin = "admin"
)

// Decision is the outcome of an authorization or business-rule check. The
// reason is user-visible and intentionally distinct from any workflow
// failure message.
type Decision struct {
	Allowed bool
	Reason  string
}

var allow = Decision{Allowed: true}

// Authorize allows a requester to act on a target identity when the
// requester is the target (self service) or holds the admin group.
func Authorize(requesterIdentity string, requesterGroups []string, targetIdentity string) Decision {
	if requesterIdentity != "" && requesterIdentity == targetIdentity {
		return allow
	}
	if hasGroup(requesterGroups, GroupAdmin) {
		return allow
	}
	return Decision{Reason: "unauthorized: you can only upgrade your own account"}
}

// CheckNotYetMember denies a transition whose destination group already
// appears in the presented claims. The claims may be stale relative to the
// directory; this is an optimistic fast-path check, not an authorization
// decision.
func CheckNotYetMember(presentedGroups []string, destinationGroup string) Decision {
	if hasGroup(presentedGroups, destinationGroup) {
		return Decision{Reason: "already a " + destinationGroup + " member"}
	}
	return allow
}

func hasGroup(groups []string, group string) bool {
	for _, g := range groups {
		if g == group {
			return true
		}
	}
	return false
}
