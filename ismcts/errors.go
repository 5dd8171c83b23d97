package ismcts

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// errNoSimulationMoves is raised when a waiting state produced by
// advanceToDecision during a playout has no candidate actions at all. Per
// the simulation phase's contract, that can only mean the adapter itself is
// broken (a genuinely waiting state always has at least one legal response).
var errNoSimulationMoves = errors.New("waiting state has no candidate actions during simulation")

// ErrorKind classifies the failure modes documented in the engine's error
// handling design. Only NoLegalActions, ValidationFailure, AdapterFailure
// and EngineExhaustion are ever returned from Decide; IllegalPrecondition
// is a programmer error and panics instead (see applyAction).
type ErrorKind int

const (
	// KindNoLegalActions means the candidate set was empty after
	// validation. The caller should fall back to its own logic.
	KindNoLegalActions ErrorKind = iota
	// KindValidationFailure means a driver rejected a proposed action.
	// The iteration that produced it is discarded.
	KindValidationFailure
	// KindAdapterFailure means a determinizer or other adapter method
	// returned an error. The iteration that produced it is discarded.
	KindAdapterFailure
	// KindEngineExhaustion means every iteration of a Decide call failed.
	KindEngineExhaustion
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoLegalActions:
		return "no_legal_actions"
	case KindValidationFailure:
		return "validation_failure"
	case KindAdapterFailure:
		return "adapter_failure"
	case KindEngineExhaustion:
		return "engine_exhaustion"
	default:
		return "unknown"
	}
}

// engineError wraps a failure with its ErrorKind so callers can branch on
// Kind() without string-matching error text.
type engineError struct {
	kind  ErrorKind
	cause error
}

func (e *engineError) Error() string {
	if e.cause == nil {
		return e.kind.String()
	}
	return fmt.Sprintf("%s: %v", e.kind, e.cause)
}

func (e *engineError) Unwrap() error { return e.cause }

// Kind returns err's ErrorKind, or false if err was not produced by this
// package.
func Kind(err error) (ErrorKind, bool) {
	var ee *engineError
	if errors.As(err, &ee) {
		return ee.kind, true
	}
	return 0, false
}

func newError(kind ErrorKind, cause error, format string, args ...any) error {
	wrapped := cause
	if format != "" {
		if cause != nil {
			wrapped = errors.Wrapf(cause, format, args...)
		} else {
			wrapped = errors.Errorf(format, args...)
		}
	}
	return &engineError{kind: kind, cause: wrapped}
}

// ErrNoLegalActions reports that the legal-action generator produced an
// empty set after validation.
func ErrNoLegalActions(cause error) error {
	return newError(KindNoLegalActions, cause, "no legal actions")
}

// ErrValidationFailure reports that a driver rejected a proposed action.
func ErrValidationFailure(cause error) error {
	return newError(KindValidationFailure, cause, "action rejected by driver")
}

// ErrAdapterFailure reports that an adapter method (most commonly
// Determinize) returned an error.
func ErrAdapterFailure(cause error) error {
	return newError(KindAdapterFailure, cause, "adapter call failed")
}

// illegalPrecondition panics: applyAction on a non-waiting state or for a
// player the state is not waiting on, and bestChildByUCB with no candidate
// children, are programmer errors and not recoverable control flow.
func illegalPrecondition(format string, args ...any) {
	panic(fmt.Sprintf("ismcts: illegal precondition: "+format, args...))
}

// exhaustionError aggregates every distinct iteration failure seen during a
// Decide call whose loop produced no root children at all.
func exhaustionError(failures *multierror.Error) error {
	if failures == nil || len(failures.Errors) == 0 {
		return newError(KindEngineExhaustion, nil, "all iterations failed")
	}
	return newError(KindEngineExhaustion, failures.ErrorOrNil(), "all %d iterations failed", len(failures.Errors))
}
