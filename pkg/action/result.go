package action

// FollowUp names the next action an execute callback wants the flow
// engine to enter immediately, without counting a move (spec.md §4.5
// "Follow-ups"). Args seeds the follow-up's already-resolved picks;
// resolution continues from whatever args remain unset.
type FollowUp struct {
	Action string
	Args   map[string]any
}

// Result is what an execute callback returns: success or a structured
// failure, optional opaque data for the caller, an optional message-log
// entry, and an optional FollowUp that chains into the next action
// without completing the enclosing action-step or counting a move.
type Result struct {
	Success   bool
	Error     string
	Data      map[string]any
	Message   string
	FollowUp  *FollowUp
}

// Ok returns a successful Result carrying data.
func Ok(data map[string]any) Result {
	return Result{Success: true, Data: data}
}

// Fail returns a failed Result carrying a human-readable error.
func Fail(err string) Result {
	return Result{Success: false, Error: err}
}

// WithMessage returns a copy of r with Message set, for chaining onto
// Ok/Fail at the execute call site.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithFollowUp returns a copy of r with a follow-up chained in.
func (r Result) WithFollowUp(action string, args map[string]any) Result {
	r.FollowUp = &FollowUp{Action: action, Args: args}
	return r
}
