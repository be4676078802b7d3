package domain

// Action names an operation subject to admission control.
type Action string

const (
	ActionCreateHotel  Action = "hotel:create"
	ActionReserve      Action = "booking:create"
	ActionListBookings Action = "booking:list"
)

// Deny reasons.
const (
	ReasonAccountNotFound = "account-not-found"
	ReasonNotAdmin        = "forbidden-not-admin"
	ReasonUnknownAction   = "unknown-action"
)

// Decision is the result of an admission-control check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Authorize decides whether principal may perform action. It is a pure
// function over its inputs; a nil principal means the resolved external id no
// longer maps to a live account. Reserve and list-bookings are always scoped
// to the principal's own account, so any live principal is admitted.
func Authorize(principal *User, action Action) Decision {
	if principal == nil {
		return Decision{Reason: ReasonAccountNotFound}
	}

	switch action {
	case ActionCreateHotel:
		if principal.Role != RoleAdmin {
			return Decision{Reason: ReasonNotAdmin}
		}
		return Decision{Allowed: true}
	case ActionReserve, ActionListBookings:
		return Decision{Allowed: true}
	default:
		return Decision{Reason: ReasonUnknownAction}
	}
}
