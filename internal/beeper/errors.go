package beeper

import "errors"

// Kind classifies upstream failures so callers can handle each case
// explicitly instead of matching on message text.
type Kind string

const (
	// KindUnreachable means the Beeper Desktop API did not accept the
	// connection at all (not running, or API disabled).
	KindUnreachable Kind = "unreachable"
	// KindUnauthorized maps to an upstream 401.
	KindUnauthorized Kind = "unauthorized"
	// KindUpstream covers every other non-2xx response or undecodable body.
	KindUpstream Kind = "upstream"
)

// Error is a classified failure from the Beeper Desktop API.
type Error struct {
	Kind   Kind
	Status int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

// KindOf returns the failure kind of err, or "" when err is not an
// upstream error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
