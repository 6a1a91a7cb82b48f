package line

import (
	"errors"
	"fmt"
	"strings"

	"tableside/internal/pkg/errs"
)

// ErrIllegalTransition is the sentinel wrapped by IllegalTransitionError.
var ErrIllegalTransition = errors.New("illegal status transition")

// Status represents the lifecycle state of an order line.
// It implements a state machine with defined transitions to ensure
// lines follow the correct kitchen workflow.
//
// State transitions:
//
//	pending ──> accepted ──> preparing ──> served
//	   │            │            │
//	   └────────────┴────────────┴──────> cancelled
//
// served and cancelled are terminal: they have no outgoing edges.
// Requesting the status a line already has is always legal and is treated
// as a no-op by the engine, which makes client retries safe.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every line: placed by the diner,
	// not yet acknowledged by staff.
	Pending

	// Accepted indicates staff has acknowledged the line.
	Accepted

	// Preparing indicates the kitchen is working on the line.
	Preparing

	// Served indicates the line reached the table. Terminal.
	Served

	// Cancelled indicates the line was withdrawn at some point
	// before being served. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		Preparing: "preparing",
		Served:    "served",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Accepted:  "accepted",
		Preparing: "preparing",
		Served:    "served",
		Cancelled: "cancelled",
	}
}

// permittedTransitions is the legal status graph. A status maps to the set
// of statuses a line may move to next; terminal statuses map to the empty set.
func permittedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Accepted, Cancelled},
		Accepted:  {Preparing, Cancelled},
		Preparing: {Served, Cancelled},
		Served:    {},
		Cancelled: {},
	}
}

// StatusFromString parses a status received from the outside (API payloads,
// database rows). Returns an error for anything outside the recognized set.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: pending, accepted, preparing, served, cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status, implementing fmt.Stringer.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AllowedNext returns the set of statuses this status may legally move to.
// Terminal statuses return an empty slice. The result is a fresh copy safe
// for callers to keep, and is what IllegalTransitionError carries so clients
// can render exactly which moves remain.
func (s Status) AllowedNext() []Status {
	next := permittedTransitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsLegal reports whether moving to next is permitted from this status.
// A transition to the same status is always legal (idempotent no-op).
func (s Status) IsLegal(next Status) bool {
	if next == s {
		return true
	}
	for _, allowed := range permittedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return len(permittedTransitions()[s]) == 0 && s.Validate() == nil
}

// TransitionTo returns next if the move is legal, or an
// IllegalTransitionError carrying the current status and its allowed-next
// set otherwise. A same-status transition returns the status unchanged.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.IsLegal(next) {
		return Unknown, NewIllegalTransitionError(s, next)
	}
	return next, nil
}

// IllegalTransitionError reports a requested status change that the
// transition graph forbids. Allowed lists the moves that remain legal from
// the line's current status so the caller can re-derive its options instead
// of guessing.
type IllegalTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given move.
func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{
		From:    from,
		To:      to,
		Allowed: from.AllowedNext(),
	}
}

func (e *IllegalTransitionError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = s.String()
	}
	return fmt.Sprintf("illegal transition from %q to %q, allowed next: [%s]",
		e.From, e.To, strings.Join(names, ", "))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
