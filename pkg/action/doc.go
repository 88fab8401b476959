// Package action implements the declarative action builder and the
// immutable Definition it produces (spec.md §4.3). An action
// definition names its picks in declaration order, an optional
// availability condition, and an execute callback that receives the
// resolved arguments and returns a structured result. Resolution
// machinery (availability traces, pick resolution, pending multi-step
// state) lives in pkg/executor, which consumes Definition but does
// not construct one.
package action
