package pipeline

import (
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// Editing operations. Every operation returns a new pipeline and leaves its
// input untouched. Out-of-range or invariant-breaking requests are silent
// no-ops returning the input unchanged: these are UI-driven best-effort
// edits, not API violations.

// AddStepAfter inserts a new default-valued step of the given kind
// immediately after index. An index below zero inserts at the front; an
// index at or past the end appends.
func AddStepAfter(p Pipeline, index int, kind Kind, tier types.Tier) Pipeline {
	step := NewDefaultStep(kind, index, tier)

	at := index + 1
	if at < 0 {
		at = 0
	}
	if at > len(p) {
		at = len(p)
	}

	out := make(Pipeline, 0, len(p)+1)
	out = append(out, p[:at].Clone()...)
	out = append(out, step)
	out = append(out, p[at:].Clone()...)
	return out
}

// RemoveStep deletes the step at index. It is a no-op if the pipeline has a
// single step (a pipeline never shrinks to empty) or the index is out of
// range.
func RemoveStep(p Pipeline, index int) Pipeline {
	if len(p) <= 1 || index < 0 || index >= len(p) {
		return p
	}

	out := make(Pipeline, 0, len(p)-1)
	out = append(out, p[:index].Clone()...)
	out = append(out, p[index+1:].Clone()...)
	return out
}

// MoveStep swaps the step at index with the step at index+delta. It is a
// no-op if either position is out of range.
func MoveStep(p Pipeline, index, delta int) Pipeline {
	target := index + delta
	if index < 0 || index >= len(p) || target < 0 || target >= len(p) {
		return p
	}

	out := p.Clone()
	out[index], out[target] = out[target], out[index]
	return out
}

// ToggleHumanReview sets MMRRequired on the agent step at index.
//
// Enabling it auto-inserts an approval step (marked AutoInserted) directly
// after, using the tier default role, unless the following step is already an
// approval. Disabling it removes the following approval only if that approval
// was auto-inserted: an operator-added approval is never removed. The
// coupling is positional; reordering steps between toggles breaks the link.
func ToggleHumanReview(p Pipeline, index int, value bool, tier types.Tier) Pipeline {
	if index < 0 || index >= len(p) || p[index].Kind != KindAgent {
		return p
	}

	out := p.Clone()
	out[index].MMRRequired = value

	next := index + 1
	if value {
		if next < len(out) && out[next].Kind == KindApproval {
			return out
		}
		approval := Step{
			Kind:         KindApproval,
			ApproverRole: tier.DefaultApproverRole(),
			AutoInserted: true,
		}
		inserted := make(Pipeline, 0, len(out)+1)
		inserted = append(inserted, out[:next]...)
		inserted = append(inserted, approval)
		inserted = append(inserted, out[next:]...)
		return inserted
	}

	if next < len(out) && out[next].Kind == KindApproval && out[next].AutoInserted {
		removed := make(Pipeline, 0, len(out)-1)
		removed = append(removed, out[:next]...)
		removed = append(removed, out[next+1:]...)
		return removed
	}
	return out
}

// AddApprovalAtEnd appends an approval step with the tier default role.
func AddApprovalAtEnd(p Pipeline, tier types.Tier) Pipeline {
	out := p.Clone()
	return append(out, Step{Kind: KindApproval, ApproverRole: tier.DefaultApproverRole()})
}

// AddSecondApprovalAtEnd appends an approval step whose role differs from the
// tier default, so two default approvals never share the identical role.
func AddSecondApprovalAtEnd(p Pipeline, tier types.Tier) Pipeline {
	role := "Manager"
	if tier.DefaultApproverRole() == "Manager" {
		role = "Compliance Lead"
	}
	out := p.Clone()
	return append(out, Step{Kind: KindApproval, ApproverRole: role})
}

// AddDelayAtEnd appends a delay step with the given minutes.
func AddDelayAtEnd(p Pipeline, minutes int) Pipeline {
	out := p.Clone()
	return append(out, Step{Kind: KindDelay, DelayMinutes: minutes})
}
