package snapshot

import (
	"context"
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/element"
)

// IssueCategory classifies one validation finding against a Snapshot.
// Re-categorized from the teacher's hard/soft dungeon constraints into
// the three ways a Snapshot can fail to be restorable.
type IssueCategory string

const (
	// MissingClass means an element's recorded class is not registered.
	MissingClass IssueCategory = "missing-class"
	// SchemaError means a record is malformed independent of any other
	// record (a missing root, a player with no position).
	SchemaError IssueCategory = "schema-error"
	// PropertyMismatch means two records disagree about a relationship
	// between them (a parent/child link pointing the wrong way, two
	// players claiming the same seat).
	PropertyMismatch IssueCategory = "property-mismatch"
)

// Issue is one validation finding.
type Issue struct {
	Category  IssueCategory
	ElementID int
	Message   string
}

// ValidationReport is the ordered list of issues found, plus an overall
// pass/fail summary, mirroring the teacher's dungeon.ValidationReport
// shape (pkg/validation/report.go).
type ValidationReport struct {
	Passed bool
	Issues []Issue
}

func (r *ValidationReport) addIssue(category IssueCategory, elementID int, format string, args ...any) {
	r.Passed = false
	r.Issues = append(r.Issues, Issue{Category: category, ElementID: elementID, Message: fmt.Sprintf(format, args...)})
}

// Validator checks a Snapshot for internal consistency and compatibility
// with a class registry before Rebuild is trusted to run against it.
// Grounded directly on the teacher's validation.DefaultValidator
// (pkg/validation/validator.go): a stateless object whose one exported
// method builds up a report by running a fixed sequence of checks.
type Validator struct{}

// NewValidator returns a ready-to-use Validator. It carries no
// configuration, matching the teacher's own NewValidator.
func NewValidator() *Validator { return &Validator{} }

// Validate checks snap against registry and returns a report. It never
// mutates snap or registry. Narrowed from the teacher's Validate(ctx,
// artifact, cfg) to Validate(ctx, snapshot, registry): a Snapshot
// carries its own settings, so there is no separate Config to check
// against.
func (v *Validator) Validate(ctx context.Context, snap *Snapshot, registry *element.Registry) (*ValidationReport, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot: cannot validate a nil snapshot")
	}
	if registry == nil {
		return nil, fmt.Errorf("snapshot: cannot validate against a nil registry")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	report := &ValidationReport{Passed: true}
	v.checkClasses(snap, registry, report)
	v.checkStructure(snap, report)
	return report, nil
}

func (v *Validator) checkClasses(snap *Snapshot, registry *element.Registry, report *ValidationReport) {
	for id, rec := range snap.Elements {
		if _, ok := registry.Get(rec.Class); !ok {
			report.addIssue(MissingClass, id, "class %q is not registered (registered: %v)", rec.Class, registry.Names())
		}
	}
	if _, ok := snap.Elements[snap.RootID]; !ok {
		report.addIssue(SchemaError, snap.RootID, "no record for the declared root element")
	}
	if _, ok := snap.Elements[snap.PileID]; !ok {
		report.addIssue(SchemaError, snap.PileID, "no record for the declared pile element")
	}
}

func (v *Validator) checkStructure(snap *Snapshot, report *ValidationReport) {
	for id, rec := range snap.Elements {
		for _, childID := range rec.Children {
			child, ok := snap.Elements[childID]
			if !ok {
				report.addIssue(PropertyMismatch, id, "lists child %d, which has no record", childID)
				continue
			}
			if child.ParentID != id {
				report.addIssue(PropertyMismatch, childID, "parent id %d does not match its listed parent %d", child.ParentID, id)
			}
		}
		if rec.Class == "Player" && rec.Position <= 0 {
			report.addIssue(SchemaError, id, "player element has a non-positive position %d", rec.Position)
		}
	}

	seats := make(map[int]int)
	for id, rec := range snap.Elements {
		if rec.Class != "Player" {
			continue
		}
		if other, ok := seats[rec.Position]; ok {
			report.addIssue(PropertyMismatch, id, "shares position %d with element %d", rec.Position, other)
			continue
		}
		seats[rec.Position] = id
	}
}
