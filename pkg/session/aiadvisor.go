package session

import (
	"context"

	"github.com/shufflewick/boardsmith/pkg/wire"
)

//go:generate mockgen -destination=mock_aiadvisor.go -package=session . AIAdvisor

// AIAdvisor is the cooperative, best-effort sanity check a session runs
// after every successfully performed action (spec.md §4.9's "scheduling
// a cooperative AI check after every successful action"). It is wholly
// optional: a Session constructed with a nil AIAdvisor never calls
// Check and the circuit breaker stays untripped forever.
//
// Check inspects the projection visible to viewer immediately after an
// action and reports whether it looks sound (ok) or, on a genuine
// failure to even ask (err != nil), is treated the same as ok == false.
// Neither outcome blocks or reverts the action that triggered it — this
// is advisory, not a validation gate.
type AIAdvisor interface {
	Check(ctx context.Context, viewer int, projection *wire.ProjectedState) (ok bool, err error)
}
