package domain

import (
	"fmt"
	"strings"
)

// Status is the canonical order status. The upstream API and older console
// builds use two vocabularies for the same field ("delivered"/"cancel" vs
// "completed"/"cancelled"); ParseStatus folds both into the canon and Label
// maps back to operator-facing wording.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var statusAliases = map[string]Status{
	"pending":   StatusPending,
	"ready":     StatusReady,
	"completed": StatusCompleted,
	"delivered": StatusCompleted,
	"cancelled": StatusCancelled,
	"cancel":    StatusCancelled,
}

// ParseStatus normalizes any upstream spelling. Unknown values fall back to
// pending, matching how the original console rendered unrecognized statuses.
func ParseStatus(raw string) Status {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusPending
}

// ParseStatusStrict accepts only the four canonical spellings. Operator input
// goes through here so a typo errors instead of folding to pending.
func ParseStatusStrict(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusReady, StatusCompleted, StatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// transitions is the legal next-state set. Completed and cancelled are
// terminal; nothing reopens a closed order.
var transitions = map[Status][]Status{
	StatusPending:   {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether moving from s to next is allowed. Setting the
// same status again is a no-op and always permitted.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStates returns the allowed successor statuses.
func (s Status) NextStates() []Status {
	return transitions[s]
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Label is the operator-facing wording; completed reads differently for
// dine-in and delivery orders.
func (s Status) Label(orderType OrderType) string {
	switch s {
	case StatusCompleted:
		if orderType == OrderTypeDelivery {
			return "Out for delivery"
		}
		return "Delivered"
	case StatusReady:
		return "Ready"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Pending"
	}
}

// InvalidTransitionError is returned when a save asks for a move the status
// machine does not allow.
type InvalidTransitionError struct {
	From, To Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}
