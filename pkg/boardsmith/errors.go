package boardsmith

import "fmt"

// Code identifies a kind of boundary failure. Hosts switch on Code rather
// than parsing Error.Message, which is for humans and may change wording.
type Code string

const (
	InvalidPlayer      Code = "INVALID_PLAYER"
	NotYourTurn        Code = "NOT_YOUR_TURN"
	ActionNotFound     Code = "ACTION_NOT_FOUND"
	ActionNotAvailable Code = "ACTION_NOT_AVAILABLE"
	InvalidPick        Code = "INVALID_PICK"
	PickNotFound       Code = "PICK_NOT_FOUND"
	InvalidActionIndex Code = "INVALID_ACTION_INDEX"
	NoActionsToUndo    Code = "NO_ACTIONS_TO_UNDO"
	CannotRewindForward Code = "CANNOT_REWIND_FORWARD"
	LobbyNotReady      Code = "LOBBY_NOT_READY"
	LobbyFull          Code = "LOBBY_FULL"
	ReplayFailed       Code = "REPLAY_FAILED"
	InternalError      Code = "INTERNAL_ERROR"
)

// Error is a structured, boundary-safe failure. It implements error so it
// can be wrapped and compared with errors.As, but callers that need to
// branch on kind should read Code directly.
type Error struct {
	Code    Code
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotYourTurnError(playerPos, currentPos int) *Error {
	return newErr(NotYourTurn, "player %d may not act, it is player %d's turn", playerPos, currentPos)
}

func InvalidPlayerError(pos int) *Error {
	return newErr(InvalidPlayer, "no player at position %d", pos)
}

func ActionNotFoundError(name string) *Error {
	return newErr(ActionNotFound, "no action registered with name %q", name)
}

func ActionNotAvailableError(name string, playerPos int) *Error {
	return newErr(ActionNotAvailable, "action %q is not available to player %d", name, playerPos)
}

func InvalidPickError(pickName string, reason string) *Error {
	return newErr(InvalidPick, "pick %q invalid: %s", pickName, reason)
}

func PickNotFoundError(pickName string) *Error {
	return newErr(PickNotFound, "no pick named %q on the pending action", pickName)
}

func InvalidActionIndexError(idx, max int) *Error {
	return newErr(InvalidActionIndex, "action index %d out of range [0,%d]", idx, max)
}

func NoActionsToUndoError() *Error {
	return newErr(NoActionsToUndo, "no actions in history to undo")
}

func CannotRewindForwardError(to, current int) *Error {
	return newErr(CannotRewindForward, "cannot rewind to index %d, history is only at %d", to, current)
}

func ReplayFailedError(reason string, cause error) *Error {
	e := newErr(ReplayFailed, "replay failed: %s", reason)
	e.Err = cause
	return e
}

func InternalErrorf(format string, args ...any) *Error {
	return newErr(InternalError, format, args...)
}

// MissingClassError reports a class referenced in a snapshot or reference
// chain that is absent from the registry at restore time. names is the
// full list of currently registered class names, per §6's contract that
// missing-class errors enumerate what IS registered.
func MissingClassError(className string, registered []string) *Error {
	return newErr(InternalError, "class %q is not registered; registered classes: %v; register it with registry.Register(%q, ...)", className, registered, className)
}
