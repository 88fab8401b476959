package flowengine

import "github.com/shufflewick/boardsmith/pkg/flow"

// frame is one stack entry: the node being walked, a node-specific
// progress counter, and a scratch map for state that does not belong in
// the global variables map (e.g. an each-player node's computed visiting
// order, an action-step's move count). completed marks a frame whose
// node has finished and is only waiting to be popped.
type frame struct {
	node      flow.Node
	index     int
	data      map[string]any
	completed bool
}

func newFrame(node flow.Node) *frame {
	return &frame{node: node, data: make(map[string]any)}
}

func (e *Engine) pushFrame(node flow.Node) {
	e.stack = append(e.stack, newFrame(node))
}

func (e *Engine) top() *frame {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

func (e *Engine) pop() {
	e.stack = e.stack[:len(e.stack)-1]
}
