package model

// Status is the lifecycle state of a coupon.
type Status string

const (
	StatusWaitingForApproval Status = "waiting_for_approval"
	StatusApproved           Status = "approved"
	StatusActive             Status = "active"
	StatusDisabled           Status = "disabled"
	StatusUsed               Status = "used"
	StatusRejected           Status = "rejected"
	StatusExpired            Status = "expired"
)

// transitions is the full set of legal status edges. Redemption (active->used)
// and expiry are included so that admin patch requests carrying those statuses
// validate against the same graph the processors use.
var transitions = map[Status]map[Status]bool{
	StatusWaitingForApproval: {
		StatusApproved: true,
		StatusActive:   true,
		StatusRejected: true,
		StatusDisabled: true,
		StatusExpired:  true,
	},
	StatusApproved: {
		StatusActive:   true,
		StatusRejected: true,
		StatusDisabled: true,
		StatusExpired:  true,
	},
	StatusActive: {
		StatusUsed:     true,
		StatusDisabled: true,
		StatusExpired:  true,
	},
	StatusDisabled: {
		StatusActive: true,
	},
	// used, rejected, expired are terminal
	StatusUsed:     {},
	StatusRejected: {},
	StatusExpired:  {},
}

// Valid reports whether s is a known coupon status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// CanTransition reports whether moving from s to next is a legal edge.
func (s Status) CanTransition(next Status) bool {
	return transitions[s][next]
}

// RequestStatus is the lifecycle state of a coupon request.
type RequestStatus string

const (
	RequestStatusRequested RequestStatus = "requested"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusUsed      RequestStatus = "used"
)
