// ABOUTME: Error taxonomy for agent process and protocol failures
// ABOUTME: Categorized errors let HTTP handlers map failures to responses

package acp

import (
	"errors"
	"fmt"
)

// Kind categorizes where in the agent lifecycle a failure happened.
type Kind string

const (
	// KindSpawn covers failures launching the agent process.
	KindSpawn Kind = "spawn"
	// KindConnection covers failures on the stdio transport.
	KindConnection Kind = "connection"
	// KindSession covers failures creating or using a session.
	KindSession Kind = "session"
	// KindProtocol covers handshake and response-shape failures.
	KindProtocol Kind = "protocol"
	// KindTimeout covers deadline expiry anywhere in the flow.
	KindTimeout Kind = "timeout"
	// KindNotConnected covers use of a connection after teardown.
	KindNotConnected Kind = "not_connected"
)

// Error is a categorized agent failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a categorized error wrapping err, which may be nil.
func NewError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Errorf builds a categorized error from a format string.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the category from err, or empty when err is not a
// categorized error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsTimeout reports whether err is a timeout failure.
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}
