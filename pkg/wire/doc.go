// Package wire defines every serializable shape shared across the
// engine's package boundary: serialized actions and their history,
// element-reference encodings used inside attribute graphs, the
// flow engine's persisted position, and the per-player projected
// state document. It exists so game, executor, session, and snapshot
// can agree on wire shapes without importing each other (spec.md §6),
// the same role the teacher's pkg/export plays for graph/dungeon/
// validation (pkg/export/json.go).
package wire
