// Package session wraps a pkg/game.Game with the event-sourced history,
// replay, broadcast, hot-reload, and checkpointing machinery spec.md
// §4.9 describes. A Session owns exactly one live *game.Game at a time
// and a wire.ActionHistory of every action that produced it; Replay
// reconstructs that same state from scratch given the same (Options,
// Definition, history), and the checkpoint manager exists purely to make
// Rewind and SwapClasses cheaper than a full replay in the common case
// without changing what either one produces.
package session
