package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrEmptyBody is returned by Response.Decode when there is no JSON body.
var ErrEmptyBody = errors.New("empty response body")

// FailureKind is the safe category of a request that produced no HTTP response.
type FailureKind int

const (
	// FailureConnection covers everything not matched by a narrower kind.
	FailureConnection FailureKind = iota
	// FailureUnreachable covers refused connections and DNS lookup failures.
	FailureUnreachable
	// FailureTimeout covers deadlines and dial/read timeouts.
	FailureTimeout
	// FailureReset covers connections reset by the peer.
	FailureReset
)

func (k FailureKind) String() string {
	switch k {
	case FailureUnreachable:
		return "unreachable"
	case FailureTimeout:
		return "timeout"
	case FailureReset:
		return "reset"
	default:
		return "connection"
	}
}

// SafeMessage is the only text about a transport failure that is surfaced to callers.
func (k FailureKind) SafeMessage() string {
	switch k {
	case FailureUnreachable:
		return "API server unreachable"
	case FailureTimeout:
		return "Request timed out"
	case FailureReset:
		return "Connection reset"
	default:
		return "Connection failed"
	}
}

// TransportError wraps a failure that happened before any HTTP response arrived.
type TransportError struct {
	Kind FailureKind
	Err  error
}

func newTransportError(err error) *TransportError {
	return &TransportError{Kind: Classify(err), Err: err}
}

// Error deliberately omits the wrapped error text.
func (e *TransportError) Error() string {
	return fmt.Sprintf("registry transport failure: %s", e.Kind.SafeMessage())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SafeMessage returns the caller-facing message for this failure.
func (e *TransportError) SafeMessage() string {
	return e.Kind.SafeMessage()
}

// Classify maps a transport error onto a FailureKind. Structured errors from
// net and syscall are checked first; message matching is the fallback for
// errors that carry no structured cause.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureConnection
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return FailureUnreachable
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return FailureTimeout
		}
		return FailureUnreachable
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ETIMEDOUT) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return FailureReset
	}

	return classifyMessage(err.Error())
}

func classifyMessage(msg string) FailureKind {
	msg = strings.ToLower(msg)
	switch {
	case containsAny(msg, "econnrefused", "connection refused", "enotfound", "no such host"):
		return FailureUnreachable
	case containsAny(msg, "etimedout", "timeout", "timed out", "deadline exceeded"):
		return FailureTimeout
	case containsAny(msg, "econnreset", "connection reset"):
		return FailureReset
	default:
		return FailureConnection
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
