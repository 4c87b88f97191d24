// Package pipeline defines the workflow pipeline step model and the
// structural editing operations over it. A pipeline is a non-empty ordered
// sequence of tagged step variants; all editing operations are pure and
// return a new sequence, never mutating their input.
package pipeline

import (
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// Kind defines the type of pipeline step.
type Kind string

const (
	KindAgent    Kind = "agent"
	KindApproval Kind = "approval"
	KindDelay    Kind = "delay"
	KindBranch   Kind = "branch"
	KindNotify   Kind = "notify"
	KindCollect  Kind = "collect"
)

// String returns the string representation of the step kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is a valid value.
func (k Kind) IsValid() bool {
	switch k {
	case KindAgent, KindApproval, KindDelay, KindBranch, KindNotify, KindCollect:
		return true
	default:
		return false
	}
}

// BranchCondition defines the predicate evaluated by a branch step.
type BranchCondition struct {
	Metric string  `json:"metric" yaml:"metric"`
	Op     string  `json:"op" yaml:"op"`
	Value  float64 `json:"value" yaml:"value"`
}

// Step represents a single step in a workflow pipeline. It is a tagged union
// discriminated by Kind; only the fields for the step's kind are meaningful,
// the rest stay at their zero value and are omitted from serialization.
type Step struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Agent step fields
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	AgentPrompt string `json:"agent_prompt,omitempty" yaml:"agent_prompt,omitempty"`
	// MMRRequired means the agent step must be followed by a human-review
	// approval step.
	MMRRequired bool `json:"mmr_required,omitempty" yaml:"mmr_required,omitempty"`

	// Approval step fields. A blank ApproverRole is a governance violation,
	// not a decode error. AutoInserted marks approvals created by toggling
	// MMRRequired on the preceding agent step.
	ApproverRole string `json:"approver_role,omitempty" yaml:"approver_role,omitempty"`
	AutoInserted bool   `json:"auto_inserted,omitempty" yaml:"auto_inserted,omitempty"`

	// Delay step fields
	DelayMinutes int `json:"delay_minutes,omitempty" yaml:"delay_minutes,omitempty"`

	// Branch step fields. OnTrueNext/OnFalseNext are raw positions into the
	// same pipeline; they are not renumbered by editing operations and must
	// be re-validated by the caller after structural edits.
	Condition   *BranchCondition `json:"condition,omitempty" yaml:"condition,omitempty"`
	OnTrueNext  int              `json:"on_true_next,omitempty" yaml:"on_true_next,omitempty"`
	OnFalseNext int              `json:"on_false_next,omitempty" yaml:"on_false_next,omitempty"`

	// Notify step fields
	Channel string `json:"channel,omitempty" yaml:"channel,omitempty"`

	// Collect step fields
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	if s.Condition != nil {
		cond := *s.Condition
		out.Condition = &cond
	}
	return out
}

// Pipeline is an ordered sequence of steps. Editing operations guarantee it
// never shrinks to zero steps once non-empty.
type Pipeline []Step

// Clone returns a deep copy of the pipeline.
func (p Pipeline) Clone() Pipeline {
	if p == nil {
		return nil
	}
	out := make(Pipeline, len(p))
	for i, s := range p {
		out[i] = s.Clone()
	}
	return out
}

// ApprovalCount returns the number of approval-kind steps in the pipeline.
func (p Pipeline) ApprovalCount() int {
	count := 0
	for _, s := range p {
		if s.Kind == KindApproval {
			count++
		}
	}
	return count
}

// HasApproval reports whether the pipeline contains at least one approval step.
func (p Pipeline) HasApproval() bool {
	return p.ApprovalCount() > 0
}

// HasDelayAtLeast reports whether the pipeline contains a delay step with
// DelayMinutes >= minutes.
func (p Pipeline) HasDelayAtLeast(minutes int) bool {
	for _, s := range p {
		if s.Kind == KindDelay && s.DelayMinutes >= minutes {
			return true
		}
	}
	return false
}

// HasPositiveDelay reports whether the pipeline contains any delay step with
// a strictly positive DelayMinutes.
func (p Pipeline) HasPositiveDelay() bool {
	for _, s := range p {
		if s.Kind == KindDelay && s.DelayMinutes > 0 {
			return true
		}
	}
	return false
}

// NewDefaultStep builds a default-valued step of the given kind, positioned
// after insertAt in its pipeline. Tier drives the default approver role for
// approval steps. Default delay is 60 minutes. Default branch targets point
// at insertAt+2 / insertAt+3; callers must re-validate them after further
// edits.
func NewDefaultStep(kind Kind, insertAt int, tier types.Tier) Step {
	switch kind {
	case KindAgent:
		return Step{Kind: KindAgent, Title: "New Agent Step"}
	case KindApproval:
		return Step{Kind: KindApproval, ApproverRole: tier.DefaultApproverRole()}
	case KindDelay:
		return Step{Kind: KindDelay, DelayMinutes: 60}
	case KindBranch:
		return Step{
			Kind:        KindBranch,
			Condition:   &BranchCondition{Metric: "conversion_rate", Op: "gte", Value: 0},
			OnTrueNext:  insertAt + 2,
			OnFalseNext: insertAt + 3,
		}
	case KindNotify:
		return Step{Kind: KindNotify, Channel: "email"}
	case KindCollect:
		return Step{Kind: KindCollect, Source: "crm"}
	default:
		return Step{Kind: kind}
	}
}
